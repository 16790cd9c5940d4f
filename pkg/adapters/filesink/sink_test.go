package filesink

import (
	"errors"
	"image"
	"testing"

	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/mocks"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

func TestOutputName(t *testing.T) {
	cases := map[string]string{
		"/photos/IMG_0001.JPG": "IMG_0001_processed.png",
		"frame.v2.tiff":         "frame.v2_processed.png",
		"/photos/no_extension": "no_extension_processed.png",
	}
	for in, want := range cases {
		if got := OutputName(in, ports.FormatPNG); got != want {
			t.Errorf("OutputName(%q) = %q, want %q", in, got, want)
		}
	}
	if got := OutputName("a.png", ports.FormatJPEG); got != "a_processed.jpg" {
		t.Errorf("unexpected jpeg name %q", got)
	}
}

func TestSink_WritesFrames(t *testing.T) {
	fs := mocks.NewFileSystem()
	codec := mocks.NewImageCodec()
	sink := New("/out", ports.FormatTIFF, 0, fs, codec, logger.NewNoop())

	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for i, src := range []string{"/in/a.jpg", "/in/b.jpg"} {
		if err := sink.WriteFrame(i, src, img); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for _, path := range []string{"/out/a_processed.tiff", "/out/b_processed.tiff"} {
		if _, ok := fs.GetFile(path); !ok {
			t.Errorf("expected %s to be written", path)
		}
	}
	if ok, _ := fs.Exists("/out"); !ok {
		t.Error("expected output directory to be created")
	}

	r := sink.Report()
	if r.Files != 2 || r.Width != 6 || r.Height != 4 || r.Codec != "tiff" {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestSink_AbortRemovesWrittenFiles(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New("/out", ports.FormatJPEG, 90, fs, mocks.NewImageCodec(), logger.NewNoop())
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))

	sink.WriteFrame(0, "/in/a.jpg", img)
	sink.WriteFrame(1, "/in/b.jpg", img)
	if err := sink.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}
	if n := len(fs.GetAllFiles()); n != 0 {
		t.Errorf("expected no files after abort, got %d", n)
	}
	if r := sink.Report(); r.Files != 0 {
		t.Errorf("expected empty report after abort, got %+v", r)
	}
}

func TestSink_EncodeError(t *testing.T) {
	codec := mocks.NewImageCodec()
	codec.EncodeFunc = func(image.Image, ports.ImageFormat, int) ([]byte, error) {
		return nil, errors.New("encoder exploded")
	}
	sink := New("/out", ports.FormatPNG, 0, mocks.NewFileSystem(), codec, logger.NewNoop())

	err := sink.WriteFrame(0, "/in/a.jpg", image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	var ee *pipeline.EncodeError
	if !errors.As(err, &ee) || ee.Target != "/out/a_processed.png" {
		t.Fatalf("expected EncodeError for the output path, got %v", err)
	}
}

func TestSink_NameCollision(t *testing.T) {
	sink := New("/out", ports.FormatPNG, 0, mocks.NewFileSystem(), mocks.NewImageCodec(), logger.NewNoop())
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))

	if err := sink.WriteFrame(0, "/in/a.jpg", img); err != nil {
		t.Fatal(err)
	}
	if err := sink.WriteFrame(1, "/in/a.png", img); err == nil {
		t.Error("expected collision error for a.jpg and a.png")
	}
}
