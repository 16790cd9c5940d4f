package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/timelapse/pkg/adapters/debugsink"
	"github.com/user/timelapse/pkg/adapters/ffmpegencoder"
	"github.com/user/timelapse/pkg/adapters/imagecodec"
	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/adapters/osfilesystem"
	"github.com/user/timelapse/pkg/adapters/progress"
	"github.com/user/timelapse/pkg/config"
	"github.com/user/timelapse/pkg/keyframe"
	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
	"github.com/user/timelapse/pkg/summarizer"
	"github.com/user/timelapse/pkg/timelapse"
)

// runProcess executes the process command.
func runProcess(c *cli.Context) error {
	fileCfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		fileCfg = loaded
	}

	cfg, err := buildConfig(c, fileCfg)
	if err != nil {
		return err
	}

	// Create logger
	level := fileCfg.LogLevel
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(level))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
	}()

	if c.IsSet("ffmpeg-path") {
		ffmpegencoder.SetFFmpegPath(c.String("ffmpeg-path"))
	}

	// Create adapters
	fs := osfilesystem.New()
	deps := timelapse.Dependencies{
		FS:       fs,
		Codec:    imagecodec.New(fs),
		Observer: progress.Noop{},
		Logger:   log,
	}
	if !c.Bool("quiet") && !c.Bool("no-progress") {
		deps.Observer = progress.ForTerminal(os.Stderr, log.WithComponent("progress"))
	}

	debugDir := fileCfg.DebugDir
	if c.IsSet("debug-dir") {
		debugDir = c.String("debug-dir")
	}
	if debugDir != "" {
		if err := fs.MkdirAll(debugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		deps.Debug = debugsink.New(debugDir, fs, deps.Codec)
	}

	// Run pipeline
	result, err := timelapse.New(deps).Run(ctx, cfg)
	if err != nil {
		return err
	}

	summaryPath := fileCfg.Summary
	if c.IsSet("summary") {
		summaryPath = c.String("summary")
	}
	if summaryPath != "" {
		writer := summarizer.NewWriter(summarizer.NewMarkdownFormatter(
			summarizer.WithTranslator(l10n.T),
			summarizer.WithVersion(version),
		), fs)
		if err := writer.Write(summaryPath, buildSummary(cfg, result)); err != nil {
			log.Error(l10n.F("Failed to write summary: %s", err))
			return err
		}
		log.Info(l10n.F("Summary saved to %s", summaryPath))
	}
	return nil
}

// buildConfig applies command-line flags over the run file.
func buildConfig(c *cli.Context, fileCfg config.Config) (orchestrator.Config, error) {
	base := fileCfg.ToOrchestratorConfig()
	b := timelapse.FromConfig(base)

	if c.IsSet("input") {
		b.WithInputDir(c.String("input"))
	}
	if c.IsSet("output") {
		b.WithOutputDir(c.String("output"))
	}
	if c.IsSet("format") {
		b.WithFormat(c.String("format"))
	}

	// Preset first, so an explicit quality wins.
	if c.IsSet("preset") {
		preset, ok := timelapse.ParseQualityPreset(c.String("preset"))
		if !ok {
			return orchestrator.Config{}, pipeline.Configf("preset", "unknown preset %q (want low, medium or high)", c.String("preset"))
		}
		b.WithQualityPreset(preset)
	}
	if c.IsSet("quality") {
		if b.Build().IsVideo() {
			b.WithCRF(c.Int("quality"))
		} else {
			b.WithJPEGQuality(c.Int("quality"))
		}
	}
	if c.IsSet("fps") {
		b.WithFPS(c.Int("fps"))
	}
	if c.IsSet("resolution") {
		b.WithResolution(c.String("resolution"))
	}
	if c.IsSet("crop") {
		b.WithCrop(c.String("crop"))
	}
	if c.IsSet("interpolation") {
		b.WithInterpolation(c.String("interpolation"))
	}

	lists := []struct {
		flag  string
		apply func(values ...float64) *timelapse.ConfigBuilder
	}{
		{"exposure", b.WithExposure},
		{"brightness", b.WithBrightness},
		{"contrast", b.WithContrast},
		{"saturation", b.WithSaturation},
	}
	for _, l := range lists {
		if !c.IsSet(l.flag) {
			continue
		}
		values, err := keyframe.ParseList(c.String(l.flag))
		if err != nil {
			return orchestrator.Config{}, fmt.Errorf("--%s: %w", l.flag, err)
		}
		l.apply(values...)
	}

	offX, offY := base.Keyframes.OffsetX, base.Keyframes.OffsetY
	for flag, dst := range map[string]*[]float64{"offset-x": &offX, "offset-y": &offY} {
		if !c.IsSet(flag) {
			continue
		}
		values, err := keyframe.ParseList(c.String(flag))
		if err != nil {
			return orchestrator.Config{}, fmt.Errorf("--%s: %w", flag, err)
		}
		*dst = values
	}
	b.WithOffsets(offX, offY)

	start, end := base.StartFrame, base.EndFrame
	if c.IsSet("start-frame") {
		start = c.Int("start-frame")
	}
	if c.IsSet("end-frame") {
		end = c.Int("end-frame")
	}
	b.WithRange(start, end)

	if c.IsSet("threads") {
		b.WithWorkers(c.Int("threads"))
	}
	if c.IsSet("preview") {
		b.WithPreview(c.String("preview"))
	}
	if c.IsSet("dry-run") {
		b.WithDryRun(c.Bool("dry-run"))
	}
	return b.Build(), nil
}

func buildSummary(cfg orchestrator.Config, result orchestrator.RunResult) *summarizer.Summary {
	kf := cfg.Keyframes
	settings := summarizer.Settings{
		Format:        cfg.Format,
		Interpolation: cfg.Interpolation,
		Crop:          cfg.Crop,
		Exposure:      keyframe.FormatList(kf.Exposure),
		Brightness:    keyframe.FormatList(kf.Brightness),
		Contrast:      keyframe.FormatList(kf.Contrast),
		Saturation:    keyframe.FormatList(kf.Saturation),
		OffsetX:       keyframe.FormatList(kf.OffsetX),
		OffsetY:       keyframe.FormatList(kf.OffsetY),
		Workers:       cfg.Workers,
	}
	if cfg.IsVideo() {
		settings.FPS = cfg.FPS
		settings.CRF = cfg.CRF
		settings.Resolution = cfg.Resolution
	} else {
		settings.Quality = cfg.Quality
	}

	return summarizer.NewBuilder().
		WithInput(summarizer.InputInfo{
			Dir:          cfg.InputDir,
			SourceImages: result.SourceImages,
			FirstFrame:   result.FirstFrame,
			LastFrame:    result.LastFrame,
		}).
		WithSettings(settings).
		WithProcessing(summarizer.ProcessingInfo{
			Frames:       result.Frames,
			Workers:      result.Workers,
			PeakBuffered: result.PeakBuffered,
			DryRun:       result.DryRun,
			PlanMs:       result.PlanTime.Milliseconds(),
			RenderMs:     result.RenderTime.Milliseconds(),
			TotalMs:      result.TotalTime.Milliseconds(),
		}).
		WithOutput(summarizer.OutputInfo{
			Path:            result.Output.Path,
			Files:           result.Output.Files,
			Bytes:           result.Output.Bytes,
			Codec:           result.Output.Codec,
			Width:           result.Output.Width,
			Height:          result.Output.Height,
			VideoDurationMs: result.VideoDuration.Milliseconds(),
		}).
		Build()
}
