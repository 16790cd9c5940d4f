package timelapse

import (
	"path/filepath"

	"github.com/user/timelapse/pkg/adapters/codecdetect"
	"github.com/user/timelapse/pkg/adapters/contactsheet"
	"github.com/user/timelapse/pkg/adapters/dirsource"
	"github.com/user/timelapse/pkg/adapters/ffmpegencoder"
	"github.com/user/timelapse/pkg/adapters/filesink"
	"github.com/user/timelapse/pkg/adapters/imagecodec"
	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/adapters/nullsink"
	"github.com/user/timelapse/pkg/adapters/osfilesystem"
	"github.com/user/timelapse/pkg/adapters/progress"
	"github.com/user/timelapse/pkg/adapters/sysinfo"
	"github.com/user/timelapse/pkg/adapters/videosink"
	"github.com/user/timelapse/pkg/geometry"
	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
	"github.com/user/timelapse/pkg/stages/plan"
	"github.com/user/timelapse/pkg/stages/render"
	"github.com/user/timelapse/pkg/stages/transform"
)

// Dependencies are the adapters a run is wired with. Nil fields get the
// local defaults: the OS file system, the standard image codecs, ffmpeg
// and gopsutil.
type Dependencies struct {
	FS        ports.FileSystem
	Codec     ports.ImageCodec
	Sources   ports.SourceLister
	Encoder   ports.VideoEncoder
	Inspector ports.VideoInspector
	System    ports.SystemInfo
	Observer  ports.ProgressObserver
	Debug     ports.DebugSink
	Logger    ports.Logger
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Logger == nil {
		d.Logger = logger.NewNoop()
	}
	if d.FS == nil {
		d.FS = osfilesystem.New()
	}
	if d.Codec == nil {
		d.Codec = imagecodec.New(d.FS)
	}
	if d.Sources == nil {
		d.Sources = dirsource.New(d.FS)
	}
	if d.Encoder == nil {
		d.Encoder = ffmpegencoder.New(d.Logger)
	}
	if d.Inspector == nil {
		d.Inspector = codecdetect.NewInspector()
	}
	if d.System == nil {
		d.System = sysinfo.New()
	}
	if d.Observer == nil {
		d.Observer = progress.Noop{}
	}
	if d.Debug == nil {
		d.Debug = nullsink.New()
	}
	return d
}

// New wires the stages and adapters into an Orchestrator.
func New(deps Dependencies) *orchestrator.Orchestrator {
	d := deps.withDefaults()

	planStage := plan.NewStage(d.Codec, d.System, d.Logger)
	transformStage := transform.NewStage(d.Codec, d.Logger)
	renderStage := render.NewStage(transformStage, d.Observer, d.Debug, d.Logger, d.System.LogicalCPUs())

	return orchestrator.New(d.Sources, planStage, renderStage, NewSinkFactory(d), d.Debug, d.Logger)
}

// NewSinkFactory returns the factory that picks the output sink for a run:
// a discarding sink for dry runs, the streaming encoder for video formats and
// the still writer otherwise. A preview path wraps the sink in a contact sheet.
func NewSinkFactory(deps Dependencies) orchestrator.SinkFactory {
	d := deps.withDefaults()

	return func(cfg orchestrator.Config, p pipeline.PlanResult) (ports.OutputSink, error) {
		var sink ports.OutputSink
		switch {
		case cfg.DryRun:
			sink = nullsink.NewOutput()

		case cfg.IsVideo():
			container, _ := ports.ParseContainer(cfg.Format)
			opts := videosink.Options{
				OutputPath: cfg.VideoPath(),
				Container:  container,
				FPS:        cfg.FPS,
				CRF:        cfg.CRF,
			}
			if cfg.Resolution != "" {
				res, err := geometry.ParseResolution(cfg.Resolution)
				if err != nil {
					return nil, err
				}
				opts.Resolution = &res
			}
			sink = videosink.New(opts, d.Encoder, d.Inspector, d.FS, d.Logger)

		default:
			format, ok := ports.ParseImageFormat(cfg.Format)
			if !ok {
				return nil, pipeline.Configf("format", "unknown format %q", cfg.Format)
			}
			sink = filesink.New(cfg.OutputDir, format, cfg.Quality, d.FS, d.Codec, d.Logger)
		}

		if cfg.PreviewPath != "" && len(p.Jobs) > 0 {
			theme := cfg.PreviewTheme
			if theme.CellWidth <= 0 || theme.MaxThumbnails <= 0 {
				theme = pipeline.DefaultPreviewTheme()
			}
			sink = contactsheet.New(sink, filepath.Clean(cfg.PreviewPath), p.Jobs[0].Index, len(p.Jobs),
				theme, d.FS, d.Codec, d.Logger)
		}
		return sink, nil
	}
}
