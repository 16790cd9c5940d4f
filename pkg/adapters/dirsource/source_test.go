package dirsource

import (
	"errors"
	"testing"

	"github.com/user/timelapse/pkg/mocks"
	"github.com/user/timelapse/pkg/pipeline"
)

func TestNaturalLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"img2.jpg", "img10.jpg", true},
		{"img10.jpg", "img2.jpg", false},
		{"a.jpg", "b.jpg", true},
		{"img02.jpg", "img2.jpg", false},
		{"img2.jpg", "img02.jpg", true},
		{"img", "img1", true},
		{"IMG_0099.JPG", "IMG_0100.JPG", true},
	}
	for _, c := range cases {
		if got := NaturalLess(c.a, c.b); got != c.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestLister_FiltersAndSorts(t *testing.T) {
	fs := mocks.NewFileSystem()
	for _, name := range []string{"img10.jpg", "img2.JPG", "img1.png", "notes.txt", "img3.webp", "img4.TIFF", "raw.cr2"} {
		fs.WriteFile("/in/"+name, []byte("x"))
	}
	fs.WriteFile("/in/sub/img0.jpg", []byte("x"))

	paths, err := New(fs).List("/in")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"/in/img1.png", "/in/img2.JPG", "/in/img3.webp", "/in/img4.TIFF", "/in/img10.jpg"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func TestLister_EmptyDirectory(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/in/readme.md", []byte("x"))

	_, err := New(fs).List("/in")
	var ce *pipeline.ConfigurationError
	if !errors.As(err, &ce) || ce.Field != "input" {
		t.Fatalf("expected input ConfigurationError, got %v", err)
	}
}

func TestLister_ListError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.ListFilesFunc = func(string) ([]string, error) { return nil, errors.New("permission denied") }

	var ce *pipeline.ConfigurationError
	if _, err := New(fs).List("/in"); !errors.As(err, &ce) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
