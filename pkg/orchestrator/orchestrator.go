// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/ideamans/go-l10n"
	"gopkg.in/yaml.v3"

	"github.com/user/timelapse/pkg/keyframe"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// SinkFactory creates the output sink once the plan is known.
type SinkFactory func(config Config, plan pipeline.PlanResult) (ports.OutputSink, error)

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	sources     ports.SourceLister
	planStage   pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult]
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult]
	sinks       SinkFactory
	debug       ports.DebugSink
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	sources ports.SourceLister,
	planStage pipeline.Stage[pipeline.PlanInput, pipeline.PlanResult],
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult],
	sinks SinkFactory,
	debug ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sources:     sources,
		planStage:   planStage,
		renderStage: renderStage,
		sinks:       sinks,
		debug:       debug,
		logger:      logger,
	}
}

// Run executes the complete pipeline. On any failure after the sink has been
// created, the sink is aborted so no partial output is left behind.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	start := time.Now()

	if err := config.Validate(); err != nil {
		return RunResult{}, err
	}

	// 1. Discover sources
	paths, err := o.sources.List(config.InputDir)
	if err != nil {
		return RunResult{}, fmt.Errorf("list sources: %w", err)
	}
	selected, first, err := config.selectRange(paths)
	if err != nil {
		return RunResult{}, err
	}
	o.logger.Info(l10n.F("Found %d images, processing frames %d-%d", len(paths), first, first+len(selected)-1))
	o.echoSettings(config)

	// 2. Plan
	planInput := pipeline.PlanInput{
		Sources:       selected,
		FirstIndex:    first,
		TotalFrames:   len(paths),
		Keyframes:     config.Keyframes,
		Interpolation: config.Interpolation,
		Crop:          config.Crop,
	}
	plan, planTime, err := pipeline.ExecuteTimed(ctx, o.planStage, planInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to plan frames: %s", err))
		return RunResult{}, fmt.Errorf("plan stage: %w", err)
	}

	if o.debug.Enabled() {
		if data, err := yaml.Marshal(newPlanDump(plan)); err == nil {
			if err := o.debug.SavePlan(data); err != nil {
				o.logger.Warn(l10n.F("Failed to save debug plan: %v", err))
			}
		}
	}

	// 3. Render into the sink
	sink, err := o.sinks(config, plan)
	if err != nil {
		return RunResult{}, fmt.Errorf("create output: %w", err)
	}

	render, err := o.renderStage.Execute(ctx, pipeline.RenderInput{
		Jobs:    plan.Jobs,
		Sink:    sink,
		Workers: config.Workers,
	})
	if err != nil {
		o.abort(sink)
		if ctx.Err() == nil {
			o.logger.Error(l10n.F("Failed to render frames: %s", err))
		}
		return RunResult{}, fmt.Errorf("render stage: %w", err)
	}

	// 4. Finalize
	if err := sink.Close(); err != nil {
		o.abort(sink)
		o.logger.Error(l10n.F("Failed to finalize output: %s", err))
		return RunResult{}, fmt.Errorf("finalize output: %w", err)
	}

	result := RunResult{
		SourceImages: len(paths),
		FirstFrame:   first,
		LastFrame:    first + len(selected) - 1,
		Frames:       render.Frames,
		Workers:      render.Workers,
		PeakBuffered: render.PeakBuffered,
		FrameSize:    plan.Output,
		PlanTime:     planTime,
		RenderTime:   render.Elapsed,
		TotalTime:    time.Since(start),
		DryRun:       config.DryRun,
	}
	if r, ok := sink.(ports.OutputReporter); ok {
		result.Output = r.Report()
	}
	if config.IsVideo() && !config.DryRun {
		result.VideoDuration = time.Duration(render.Frames) * time.Second / time.Duration(config.FPS)
	}

	if config.DryRun {
		o.logger.Info(l10n.F("Dry run processed %d frames in %s", result.Frames, result.RenderTime.Round(time.Millisecond)))
	} else {
		o.logger.Info(l10n.F("Output saved to %s", result.Output.Path))
	}
	return result, nil
}

func (o *Orchestrator) abort(sink ports.OutputSink) {
	if err := sink.Abort(); err != nil {
		o.logger.Warn(l10n.F("Failed to clean up partial output: %v", err))
	}
}

// echoSettings logs the effective settings before any work starts.
func (o *Orchestrator) echoSettings(config Config) {
	target := config.OutputDir
	if config.IsVideo() {
		target = config.VideoPath()
	}
	if config.DryRun {
		target = "-"
	}
	o.logger.Info(l10n.F("Output: %s (%s)", target, config.Format))

	kf := config.Keyframes
	for _, p := range []struct {
		name   string
		values []float64
	}{
		{"exposure", kf.Exposure},
		{"brightness", kf.Brightness},
		{"contrast", kf.Contrast},
		{"saturation", kf.Saturation},
		{"offset-x", kf.OffsetX},
		{"offset-y", kf.OffsetY},
	} {
		if len(p.values) > 0 {
			o.logger.Info(l10n.F("Keyframes %s: %s", p.name, keyframe.FormatList(p.values)))
		}
	}
	if config.Crop != "" {
		o.logger.Info(l10n.F("Crop: %s", config.Crop))
	}
	if config.IsVideo() {
		o.logger.Info(l10n.F("Video: %d fps, CRF %d", config.FPS, config.CRF))
		if config.Resolution != "" {
			o.logger.Info(l10n.F("Resolution: %s", config.Resolution))
		}
	}
}

// planDump is the debug view of a plan.
type planDump struct {
	Frames int           `yaml:"frames"`
	Output string        `yaml:"output"`
	Jobs   []planDumpJob `yaml:"jobs"`
}

type planDumpJob struct {
	Index      int     `yaml:"index"`
	Source     string  `yaml:"source"`
	Size       string  `yaml:"size"`
	Rect       string  `yaml:"rect"`
	Exposure   float64 `yaml:"exposure"`
	Brightness float64 `yaml:"brightness"`
	Contrast   float64 `yaml:"contrast"`
	Saturation float64 `yaml:"saturation"`
}

func newPlanDump(plan pipeline.PlanResult) planDump {
	d := planDump{Frames: len(plan.Jobs), Output: plan.Output.String()}
	for _, j := range plan.Jobs {
		d.Jobs = append(d.Jobs, planDumpJob{
			Index:      j.Index,
			Source:     j.SourcePath,
			Size:       j.Source.String(),
			Rect:       j.Rect.String(),
			Exposure:   j.Adjustments.Exposure,
			Brightness: j.Adjustments.Brightness,
			Contrast:   j.Adjustments.Contrast,
			Saturation: j.Adjustments.Saturation,
		})
	}
	return d
}

// RunResult contains the results of a run for summary generation.
type RunResult struct {
	// Frames
	SourceImages int
	FirstFrame   int
	LastFrame    int
	Frames       int
	FrameSize    pipeline.Dimension

	// Rendering
	Workers      int
	PeakBuffered int
	DryRun       bool

	// Timing
	PlanTime      time.Duration
	RenderTime    time.Duration
	TotalTime     time.Duration
	VideoDuration time.Duration

	Output ports.OutputReport
}
