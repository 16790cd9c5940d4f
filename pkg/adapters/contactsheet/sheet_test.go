package contactsheet

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/timelapse/pkg/adapters/imagecodec"
	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/mocks"
	"github.com/user/timelapse/pkg/pipeline"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleIndices(t *testing.T) {
	got := SampleIndices(10, 5, 16)
	if len(got) != 5 || got[0] != 10 || got[4] != 14 {
		t.Errorf("short sequence should keep every frame, got %v", got)
	}

	got = SampleIndices(0, 100, 4)
	want := []int{0, 33, 66, 99}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %d, got %d", i, want[i], got[i])
		}
	}

	if got := SampleIndices(0, 0, 4); got != nil {
		t.Errorf("expected no samples, got %v", got)
	}
}

func newSheet(next *mocks.OutputSink, first, count int) (*Sheet, *mocks.FileSystem) {
	fs := mocks.NewFileSystem()
	theme := pipeline.DefaultPreviewTheme()
	theme.CellWidth = 40
	theme.MaxThumbnails = 4
	return New(next, "/out/preview.png", first, count, theme, fs, imagecodec.New(fs), logger.NewNoop()), fs
}

func TestSheet_WritesGridOnClose(t *testing.T) {
	next := &mocks.OutputSink{}
	sheet, fs := newSheet(next, 0, 9)

	for i := 0; i < 9; i++ {
		if err := sheet.WriteFrame(i, "src", solid(80, 60, color.RGBA{R: 200, A: 255})); err != nil {
			t.Fatalf("WriteFrame %d: %v", i, err)
		}
	}
	if len(next.Written()) != 9 {
		t.Fatalf("expected every frame forwarded, got %d", len(next.Written()))
	}
	if len(sheet.thumbs) != 4 {
		t.Fatalf("expected 4 thumbnails, got %d", len(sheet.thumbs))
	}
	if b := sheet.thumbs[0].img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("expected 40x30 thumbnail, got %v", b)
	}

	if err := sheet.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !next.CloseCalled {
		t.Error("expected wrapped sink to be closed")
	}

	data, ok := fs.GetFile("/out/preview.png")
	if !ok {
		t.Fatal("expected preview to be written")
	}
	w, h, err := imagecodec.New(fs).DecodeConfig("/out/preview.png")
	if err != nil {
		t.Fatalf("preview is not a valid image (%d bytes): %v", len(data), err)
	}
	// 2x2 grid: 2*40 + 3*12 wide, 2*(30+20) + 3*12 high.
	if w != 116 || h != 136 {
		t.Errorf("expected 116x136 sheet, got %dx%d", w, h)
	}
}

func TestSheet_AbortWritesNothing(t *testing.T) {
	next := &mocks.OutputSink{}
	sheet, fs := newSheet(next, 0, 3)
	sheet.WriteFrame(0, "src", solid(10, 10, color.White))

	if err := sheet.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}
	if !next.AbortCalled {
		t.Error("expected wrapped sink to be aborted")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected no preview after abort")
	}
}

func TestSheet_WrappedCloseErrorSkipsPreview(t *testing.T) {
	closeErr := errors.New("encoder failed")
	next := &mocks.OutputSink{CloseFunc: func() error { return closeErr }}
	sheet, fs := newSheet(next, 0, 2)
	sheet.WriteFrame(0, "src", solid(10, 10, color.White))

	if err := sheet.Close(); !errors.Is(err, closeErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if _, ok := fs.GetFile("/out/preview.png"); ok {
		t.Error("preview must not be written when the output failed")
	}
}

func TestSheet_ForwardErrorKeepsNoThumbnail(t *testing.T) {
	next := &mocks.OutputSink{WriteFrameFunc: func(int, string, image.Image) error { return errors.New("disk full") }}
	sheet, _ := newSheet(next, 0, 2)
	if err := sheet.WriteFrame(0, "src", solid(10, 10, color.White)); err == nil {
		t.Fatal("expected error")
	}
	if len(sheet.thumbs) != 0 {
		t.Error("failed frames must not be sampled")
	}
}
