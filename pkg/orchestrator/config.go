package orchestrator

import (
	"path/filepath"

	"github.com/user/timelapse/pkg/geometry"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Config contains all configuration for a run.
type Config struct {
	// Input/Output
	InputDir  string
	OutputDir string

	// Range, inclusive and 0-based. EndFrame < 0 selects the last image.
	StartFrame int
	EndFrame   int

	// Adjustments
	Keyframes     pipeline.KeyframeSet
	Interpolation string
	Crop          string

	// Output
	Format     string // jpg, png, tiff, mp4, mov or avi
	Quality    int    // JPEG quality 1-100
	FPS        int
	CRF        int
	Resolution string // WIDTHxHEIGHT or preset, video only

	// Performance. Zero selects one worker per logical CPU.
	Workers int

	// Reports
	PreviewPath  string
	PreviewTheme pipeline.PreviewTheme
	DryRun       bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		EndFrame:  -1,
		Keyframes: pipeline.DefaultKeyframeSet(),
		Format:    "jpg",
		Quality:   95,
		FPS:       24,
		CRF:       20,

		PreviewTheme: pipeline.DefaultPreviewTheme(),
	}
}

// IsVideo reports whether Format names a video container.
func (c Config) IsVideo() bool {
	_, ok := ports.ParseContainer(c.Format)
	return ok
}

// VideoPath is where a video run writes its output.
func (c Config) VideoPath() string {
	container, _ := ports.ParseContainer(c.Format)
	return filepath.Join(c.OutputDir, "timelapse."+string(container))
}

// Validate checks every option that does not depend on the source images.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return pipeline.Configf("input", "input directory is required")
	}
	if c.OutputDir == "" && !c.DryRun {
		return pipeline.Configf("output", "output directory is required")
	}

	if c.IsVideo() {
		if c.FPS < 1 || c.FPS > 120 {
			return pipeline.Configf("fps", "must be between 1 and 120, got %d", c.FPS)
		}
		if c.CRF < 0 || c.CRF > 51 {
			return pipeline.Configf("quality", "CRF must be between 0 and 51, got %d", c.CRF)
		}
		if c.Resolution != "" {
			if _, err := geometry.ParseResolution(c.Resolution); err != nil {
				return err
			}
		}
	} else {
		if _, ok := ports.ParseImageFormat(c.Format); !ok {
			return pipeline.Configf("format", "unknown format %q (want jpg, png, tiff, mp4, mov or avi)", c.Format)
		}
		if c.Quality < 1 || c.Quality > 100 {
			return pipeline.Configf("quality", "JPEG quality must be between 1 and 100, got %d", c.Quality)
		}
	}

	if c.Workers < 0 {
		return pipeline.Configf("threads", "must not be negative, got %d", c.Workers)
	}
	if c.StartFrame < 0 {
		return pipeline.Configf("start-frame", "must not be negative, got %d", c.StartFrame)
	}
	if c.EndFrame >= 0 && c.StartFrame > c.EndFrame {
		return pipeline.Configf("start-frame", "start frame %d is after end frame %d", c.StartFrame, c.EndFrame)
	}
	return nil
}

// selectRange returns the configured slice of paths and the global index of its first element.
func (c Config) selectRange(paths []string) ([]string, int, error) {
	count := len(paths)
	if c.StartFrame >= count {
		return nil, 0, pipeline.Configf("start-frame", "frame %d is past the last image (%d images)", c.StartFrame, count)
	}
	end := count - 1
	if c.EndFrame >= 0 {
		if c.EndFrame >= count {
			return nil, 0, pipeline.Configf("end-frame", "frame %d is past the last image (%d images)", c.EndFrame, count)
		}
		end = c.EndFrame
	}
	return paths[c.StartFrame : end+1], c.StartFrame, nil
}
