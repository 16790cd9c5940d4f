package timelapse

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/timelapse/pkg/adapters/contactsheet"
	"github.com/user/timelapse/pkg/adapters/filesink"
	"github.com/user/timelapse/pkg/adapters/imagecodec"
	"github.com/user/timelapse/pkg/adapters/nullsink"
	"github.com/user/timelapse/pkg/adapters/videosink"
	"github.com/user/timelapse/pkg/mocks"
	"github.com/user/timelapse/pkg/pipeline"
)

func TestGetQualitySettings(t *testing.T) {
	cases := map[QualityPreset]int{QualityLow: 28, QualityMedium: 20, QualityHigh: 16, "unknown": 20}
	for preset, crf := range cases {
		if got := GetQualitySettings(preset).VideoCRF; got != crf {
			t.Errorf("%s: expected CRF %d, got %d", preset, crf, got)
		}
	}
	if _, ok := ParseQualityPreset("ultra"); ok {
		t.Error("expected unknown preset to be rejected")
	}
}

func TestConfigBuilder(t *testing.T) {
	offsets := []float64{0, 100}
	cfg := NewConfigBuilder("/in", "/out").
		WithFormat("mp4").
		WithQualityPreset(QualityHigh).
		WithFPS(30).
		WithCrop("50%:50%:0:0").
		WithOffsets(offsets, nil).
		WithExposure(0, 1).
		WithRange(2, 8).
		Build()

	if cfg.InputDir != "/in" || cfg.OutputDir != "/out" || cfg.Format != "mp4" {
		t.Errorf("unexpected paths/format: %+v", cfg)
	}
	if cfg.CRF != 16 || cfg.FPS != 30 {
		t.Errorf("expected CRF 16 at 30 fps, got %d at %d", cfg.CRF, cfg.FPS)
	}
	if cfg.StartFrame != 2 || cfg.EndFrame != 8 {
		t.Errorf("unexpected range %d-%d", cfg.StartFrame, cfg.EndFrame)
	}
	if len(cfg.Keyframes.Contrast) != 1 || cfg.Keyframes.Contrast[0] != 1 {
		t.Errorf("unset parameters should keep identity keyframes, got %v", cfg.Keyframes.Contrast)
	}

	offsets[1] = 999
	if cfg.Keyframes.OffsetX[1] != 100 {
		t.Error("Build should copy keyframe slices")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("built config should be valid: %v", err)
	}
}

func TestNewSinkFactory(t *testing.T) {
	factory := NewSinkFactory(Dependencies{FS: mocks.NewFileSystem(), Encoder: &mocks.VideoEncoder{}, Inspector: &mocks.VideoInspector{}})
	plan := pipeline.PlanResult{Jobs: []pipeline.FrameJob{{Index: 0}, {Index: 1}}}

	sink, err := factory(NewConfigBuilder("/in", "/out").WithFormat("png").Build(), plan)
	if _, ok := sink.(*filesink.Sink); err != nil || !ok {
		t.Errorf("expected still sink, got %T (%v)", sink, err)
	}

	sink, err = factory(NewConfigBuilder("/in", "/out").WithFormat("mov").WithResolution("720p").Build(), plan)
	if _, ok := sink.(*videosink.Sink); err != nil || !ok {
		t.Errorf("expected video sink, got %T (%v)", sink, err)
	}

	sink, err = factory(NewConfigBuilder("/in", "").WithFormat("mp4").WithDryRun(true).Build(), plan)
	if _, ok := sink.(*nullsink.Output); err != nil || !ok {
		t.Errorf("expected discarding sink, got %T (%v)", sink, err)
	}

	sink, err = factory(NewConfigBuilder("/in", "/out").WithPreview("/out/preview.png").Build(), plan)
	if _, ok := sink.(*contactsheet.Sheet); err != nil || !ok {
		t.Errorf("expected contact sheet, got %T (%v)", sink, err)
	}

	if _, err := factory(NewConfigBuilder("/in", "/out").WithFormat("mp4").WithResolution("huge").Build(), plan); err == nil {
		t.Error("expected error for bad resolution")
	}
}

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestNew_EndToEndStills(t *testing.T) {
	fs := mocks.NewFileSystem()
	for i := 1; i <= 12; i++ {
		fs.WriteFile(fmt.Sprintf("/in/shot%d.png", i), encodePNG(t, 64, 48, color.NRGBA{R: 100, G: 100, B: 100, A: 255}))
	}

	orch := New(Dependencies{FS: fs, System: &mocks.SystemInfo{CPUs: 3, Available: 1 << 30}})
	cfg := NewConfigBuilder("/in", "/out").
		WithFormat("png").
		WithCrop("32:24:0:0").
		WithOffsets([]float64{0, 32}, []float64{0, 24}).
		WithBrightness(0, 20).
		Build()

	result, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Frames != 12 || result.Output.Files != 12 {
		t.Fatalf("expected 12 frames and files, got %+v", result)
	}

	codec := imagecodec.New(fs)
	w, h, err := codec.DecodeConfig("/out/shot12_processed.png")
	if err != nil {
		t.Fatalf("missing last output: %v", err)
	}
	if w != 32 || h != 24 {
		t.Errorf("expected 32x24 crop, got %dx%d", w, h)
	}

	first, _ := codec.Decode("/out/shot1_processed.png")
	last, _ := codec.Decode("/out/shot12_processed.png")
	r0, _, _, _ := first.At(0, 0).RGBA()
	r1, _, _, _ := last.At(0, 0).RGBA()
	// Brightness ramps from 0 to 20: 100 stays 100 and ends at 151.
	if r0>>8 != 100 || r1>>8 != 151 {
		t.Errorf("expected red 100 then 151, got %d then %d", r0>>8, r1>>8)
	}
}
