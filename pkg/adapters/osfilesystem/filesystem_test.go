package osfilesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "out", "nested", "frame.jpg")

	if err := fs.WriteFile(path, []byte("jpeg")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "jpeg" {
		t.Errorf("expected %q, got %q", "jpeg", data)
	}
	size, err := fs.Size(path)
	if err != nil || size != 4 {
		t.Errorf("expected size 4, got %d (%v)", size, err)
	}
}

func TestFileSystem_ExistsAndRemove(t *testing.T) {
	fs := New()
	path := filepath.Join(t.TempDir(), "a.png")

	if ok, err := fs.Exists(path); err != nil || ok {
		t.Fatalf("expected missing file, got %v %v", ok, err)
	}
	if err := fs.WriteFile(path, nil); err != nil {
		t.Fatal(err)
	}
	if ok, _ := fs.Exists(path); !ok {
		t.Fatal("expected file to exist")
	}
	if err := fs.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok, _ := fs.Exists(path); ok {
		t.Error("expected file to be removed")
	}
}

func TestFileSystem_ListFiles(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	for _, name := range []string{"b.jpg", "a.JPG", ".DS_Store", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := fs.MkdirAll(filepath.Join(dir, "sub")); err != nil {
		t.Fatal(err)
	}

	names, err := fs.ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	want := []string{"a.JPG", "b.jpg", "notes.txt"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestFileSystem_ListFilesMissingDir(t *testing.T) {
	if _, err := New().ListFiles(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
