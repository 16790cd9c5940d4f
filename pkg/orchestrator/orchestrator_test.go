package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/mocks"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
	"github.com/user/timelapse/pkg/stages/plan"
	"github.com/user/timelapse/pkg/stages/render"
	"github.com/user/timelapse/pkg/stages/transform"
)

type fixture struct {
	codec        *mocks.ImageCodec
	lister       *mocks.SourceLister
	sink         *mocks.OutputSink
	debug        *mocks.DebugSink
	factoryCalls int
}

func newFixture(n int) *fixture {
	f := &fixture{
		codec:  mocks.NewImageCodec(),
		lister: &mocks.SourceLister{},
		sink:   &mocks.OutputSink{},
		debug:  mocks.NewDebugSink(false),
	}
	for i := 0; i < n; i++ {
		path := fmt.Sprintf("/in/img%02d.jpg", i)
		f.codec.AddImage(path, image.NewNRGBA(image.Rect(0, 0, 40, 30)))
		f.lister.Paths = append(f.lister.Paths, path)
	}
	return f
}

func (f *fixture) orchestrator() *Orchestrator {
	log := logger.NewNoop()
	planStage := plan.NewStage(f.codec, nil, log)
	renderStage := render.NewStage(transform.NewStage(f.codec, log), &mocks.ProgressObserver{}, f.debug, log, 2)
	factory := func(Config, pipeline.PlanResult) (ports.OutputSink, error) {
		f.factoryCalls++
		return f.sink, nil
	}
	return New(f.lister, planStage, renderStage, factory, f.debug, log)
}

func baseConfig() Config {
	config := DefaultConfig()
	config.InputDir = "/in"
	config.OutputDir = "/out"
	config.Format = "png"
	return config
}

func TestOrchestrator_Run(t *testing.T) {
	f := newFixture(6)
	result, err := f.orchestrator().Run(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	written := f.sink.Written()
	if len(written) != 6 {
		t.Fatalf("expected 6 frames, got %v", written)
	}
	for i, idx := range written {
		if idx != i {
			t.Errorf("position %d: expected frame %d, got %d", i, i, idx)
		}
	}
	if !f.sink.CloseCalled || f.sink.AbortCalled {
		t.Errorf("expected Close without Abort, got close=%v abort=%v", f.sink.CloseCalled, f.sink.AbortCalled)
	}
	if result.Frames != 6 || result.SourceImages != 6 || result.LastFrame != 5 {
		t.Errorf("unexpected result %+v", result)
	}
	if result.FrameSize != (pipeline.Dimension{Width: 40, Height: 30}) {
		t.Errorf("unexpected frame size %v", result.FrameSize)
	}
	if result.VideoDuration != 0 {
		t.Errorf("stills should have no video duration, got %v", result.VideoDuration)
	}
}

func TestOrchestrator_Run_FrameRange(t *testing.T) {
	f := newFixture(6)
	config := baseConfig()
	config.StartFrame = 2
	config.EndFrame = 4

	result, err := f.orchestrator().Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	written := f.sink.Written()
	if len(written) != 3 || written[0] != 2 || written[2] != 4 {
		t.Errorf("expected frames 2-4, got %v", written)
	}
	if result.FirstFrame != 2 || result.LastFrame != 4 || result.SourceImages != 6 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestOrchestrator_Run_RangePastEnd(t *testing.T) {
	f := newFixture(6)
	config := baseConfig()
	config.StartFrame = 6

	_, err := f.orchestrator().Run(context.Background(), config)
	var ce *pipeline.ConfigurationError
	if !errors.As(err, &ce) || ce.Field != "start-frame" {
		t.Fatalf("expected start-frame ConfigurationError, got %v", err)
	}

	config.StartFrame = 0
	config.EndFrame = 6
	_, err = f.orchestrator().Run(context.Background(), config)
	if !errors.As(err, &ce) || ce.Field != "end-frame" {
		t.Fatalf("expected end-frame ConfigurationError, got %v", err)
	}
}

func TestOrchestrator_Run_BoundaryErrorBeforeOutput(t *testing.T) {
	f := newFixture(4)
	config := baseConfig()
	config.Crop = "30:30:20:0"

	_, err := f.orchestrator().Run(context.Background(), config)
	var be *pipeline.BoundaryError
	if !errors.As(err, &be) {
		t.Fatalf("expected BoundaryError, got %v", err)
	}
	if be.FrameIndex != 0 {
		t.Errorf("expected frame 0, got %d", be.FrameIndex)
	}
	if f.factoryCalls != 0 {
		t.Error("no output should be created for an invalid plan")
	}
	if len(f.codec.DecodeCalls) != 0 {
		t.Errorf("expected no pixel decoding, got %d decodes", len(f.codec.DecodeCalls))
	}
}

func TestOrchestrator_Run_RenderErrorAbortsSink(t *testing.T) {
	f := newFixture(8)
	f.codec.DecodeFunc = func(path string) (image.Image, error) {
		if strings.HasSuffix(path, "img03.jpg") {
			return nil, errors.New("truncated file")
		}
		return image.NewNRGBA(image.Rect(0, 0, 40, 30)), nil
	}

	_, err := f.orchestrator().Run(context.Background(), baseConfig())
	var pe *pipeline.PipelineError
	if !errors.As(err, &pe) || pe.FrameIndex != 3 {
		t.Fatalf("expected PipelineError at frame 3, got %v", err)
	}
	var de *pipeline.DecodeError
	if !errors.As(err, &de) {
		t.Errorf("expected DecodeError cause, got %v", err)
	}
	if !f.sink.AbortCalled || f.sink.CloseCalled {
		t.Errorf("expected Abort without Close, got abort=%v close=%v", f.sink.AbortCalled, f.sink.CloseCalled)
	}
}

func TestOrchestrator_Run_CloseErrorAbortsSink(t *testing.T) {
	f := newFixture(3)
	f.sink.CloseFunc = func() error { return errors.New("ffmpeg exited") }

	if _, err := f.orchestrator().Run(context.Background(), baseConfig()); err == nil {
		t.Fatal("expected error")
	}
	if !f.sink.AbortCalled {
		t.Error("expected Abort after failed Close")
	}
}

func TestOrchestrator_Run_Cancelled(t *testing.T) {
	f := newFixture(20)
	ctx, cancel := context.WithCancel(context.Background())
	f.sink.WriteFrameFunc = func(index int, _ string, _ image.Image) error {
		if index == 2 {
			cancel()
		}
		return nil
	}

	_, err := f.orchestrator().Run(ctx, baseConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !f.sink.AbortCalled {
		t.Error("expected Abort on cancellation")
	}
}

func TestOrchestrator_Run_SavesDebugPlan(t *testing.T) {
	f := newFixture(3)
	f.debug = mocks.NewDebugSink(true)

	if _, err := f.orchestrator().Run(context.Background(), baseConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	plan := string(f.debug.Plan)
	if !strings.Contains(plan, "frames: 3") || !strings.Contains(plan, "40:30:0:0") {
		t.Errorf("unexpected plan dump:\n%s", plan)
	}
	if f.debug.FrameCount() != 1 {
		t.Errorf("expected the first frame to be saved, got %d", f.debug.FrameCount())
	}
}

func TestOrchestrator_Run_VideoDuration(t *testing.T) {
	f := newFixture(6)
	config := baseConfig()
	config.Format = "mp4"
	config.FPS = 2

	result, err := f.orchestrator().Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.VideoDuration != 3*time.Second {
		t.Errorf("expected 3s, got %v", result.VideoDuration)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"missing input", func(c *Config) { c.InputDir = "" }, "input"},
		{"missing output", func(c *Config) { c.OutputDir = "" }, "output"},
		{"unknown format", func(c *Config) { c.Format = "gif" }, "format"},
		{"jpeg quality", func(c *Config) { c.Quality = 0 }, "quality"},
		{"fps", func(c *Config) { c.Format = "mp4"; c.FPS = 121 }, "fps"},
		{"crf", func(c *Config) { c.Format = "mov"; c.CRF = 52 }, "quality"},
		{"resolution", func(c *Config) { c.Format = "mp4"; c.Resolution = "0x720" }, "resolution"},
		{"threads", func(c *Config) { c.Workers = -1 }, "threads"},
		{"start after end", func(c *Config) { c.StartFrame = 5; c.EndFrame = 2 }, "start-frame"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := baseConfig()
			tc.modify(&config)
			err := config.Validate()
			var ce *pipeline.ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigurationError, got %v", err)
			}
			if ce.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, ce.Field)
			}
		})
	}

	dry := baseConfig()
	dry.OutputDir = ""
	dry.DryRun = true
	if err := dry.Validate(); err != nil {
		t.Errorf("dry run should not need an output directory: %v", err)
	}
}

func TestConfig_VideoPath(t *testing.T) {
	config := baseConfig()
	config.Format = "MOV"
	if !config.IsVideo() {
		t.Fatal("expected MOV to be a video format")
	}
	if got := config.VideoPath(); got != "/out/timelapse.mov" {
		t.Errorf("unexpected video path %q", got)
	}
}
