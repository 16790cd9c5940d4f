// Package timelapse provides a high-level API for building timelapse runs.
package timelapse

import (
	"image/color"

	"github.com/user/timelapse/pkg/orchestrator"
)

// QualityPreset represents an output quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// QualitySettings contains the encoder settings of a preset.
type QualitySettings struct {
	VideoCRF    int // H.264 CRF (0-51, lower is better)
	JPEGQuality int // still JPEG quality (1-100)
}

// GetQualitySettings returns quality settings for the given preset.
func GetQualitySettings(preset QualityPreset) QualitySettings {
	switch preset {
	case QualityLow:
		return QualitySettings{VideoCRF: 28, JPEGQuality: 80}
	case QualityHigh:
		return QualitySettings{VideoCRF: 16, JPEGQuality: 100}
	default: // medium
		return QualitySettings{VideoCRF: 20, JPEGQuality: 95}
	}
}

// ParseQualityPreset reports whether s names a preset.
func ParseQualityPreset(s string) (QualityPreset, bool) {
	switch p := QualityPreset(s); p {
	case QualityLow, QualityMedium, QualityHigh:
		return p, true
	default:
		return "", false
	}
}

// ConfigBuilder provides a fluent interface for building orchestrator.Config.
type ConfigBuilder struct {
	config orchestrator.Config
}

// NewConfigBuilder creates a ConfigBuilder with default settings and the medium quality preset.
func NewConfigBuilder(inputDir, outputDir string) *ConfigBuilder {
	cfg := orchestrator.DefaultConfig()
	cfg.InputDir = inputDir
	cfg.OutputDir = outputDir
	b := &ConfigBuilder{config: cfg}
	return b.WithQualityPreset(QualityMedium)
}

// FromConfig starts a builder from an existing configuration.
func FromConfig(cfg orchestrator.Config) *ConfigBuilder {
	return &ConfigBuilder{config: cfg}
}

// Build returns the final Config. Keyframe slices are copied so later
// builder calls cannot alias them.
func (b *ConfigBuilder) Build() orchestrator.Config {
	cfg := b.config
	kf := &cfg.Keyframes
	kf.Exposure = clone(kf.Exposure)
	kf.Brightness = clone(kf.Brightness)
	kf.Contrast = clone(kf.Contrast)
	kf.Saturation = clone(kf.Saturation)
	kf.OffsetX = clone(kf.OffsetX)
	kf.OffsetY = clone(kf.OffsetY)
	return cfg
}

func clone(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}

// WithInputDir sets the source directory.
func (b *ConfigBuilder) WithInputDir(dir string) *ConfigBuilder {
	b.config.InputDir = dir
	return b
}

// WithOutputDir sets the output directory.
func (b *ConfigBuilder) WithOutputDir(dir string) *ConfigBuilder {
	b.config.OutputDir = dir
	return b
}

// WithFormat sets the output format (jpg, png, tiff, mp4, mov or avi).
func (b *ConfigBuilder) WithFormat(format string) *ConfigBuilder {
	b.config.Format = format
	return b
}

// WithQualityPreset applies a quality preset (low, medium, high).
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	settings := GetQualitySettings(preset)
	b.config.CRF = settings.VideoCRF
	b.config.Quality = settings.JPEGQuality
	return b
}

// WithCRF sets the H.264 CRF, overriding the preset.
func (b *ConfigBuilder) WithCRF(crf int) *ConfigBuilder {
	b.config.CRF = crf
	return b
}

// WithJPEGQuality sets the still JPEG quality, overriding the preset.
func (b *ConfigBuilder) WithJPEGQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithFPS sets the video frame rate.
func (b *ConfigBuilder) WithFPS(fps int) *ConfigBuilder {
	b.config.FPS = fps
	return b
}

// WithResolution sets the video output size as WIDTHxHEIGHT or a preset name.
func (b *ConfigBuilder) WithResolution(resolution string) *ConfigBuilder {
	b.config.Resolution = resolution
	return b
}

// WithCrop sets the crop window as width:height:x:y.
func (b *ConfigBuilder) WithCrop(crop string) *ConfigBuilder {
	b.config.Crop = crop
	return b
}

// WithExposure sets the exposure keyframes in EV stops.
func (b *ConfigBuilder) WithExposure(values ...float64) *ConfigBuilder {
	b.config.Keyframes.Exposure = values
	return b
}

// WithBrightness sets the brightness keyframes (-100 to 100).
func (b *ConfigBuilder) WithBrightness(values ...float64) *ConfigBuilder {
	b.config.Keyframes.Brightness = values
	return b
}

// WithContrast sets the contrast keyframes (1 = unchanged).
func (b *ConfigBuilder) WithContrast(values ...float64) *ConfigBuilder {
	b.config.Keyframes.Contrast = values
	return b
}

// WithSaturation sets the saturation keyframes (1 = unchanged).
func (b *ConfigBuilder) WithSaturation(values ...float64) *ConfigBuilder {
	b.config.Keyframes.Saturation = values
	return b
}

// WithOffsets sets the crop offset keyframes in pixels. Nil leaves an axis unset.
func (b *ConfigBuilder) WithOffsets(x, y []float64) *ConfigBuilder {
	b.config.Keyframes.OffsetX = x
	b.config.Keyframes.OffsetY = y
	return b
}

// WithInterpolation sets the interpolation mode (linear or bezier).
func (b *ConfigBuilder) WithInterpolation(mode string) *ConfigBuilder {
	b.config.Interpolation = mode
	return b
}

// WithRange limits the run to frames start..end inclusive. A negative end means the last frame.
func (b *ConfigBuilder) WithRange(start, end int) *ConfigBuilder {
	b.config.StartFrame = start
	b.config.EndFrame = end
	return b
}

// WithWorkers sets the worker count. Zero selects one per logical CPU.
func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	b.config.Workers = workers
	return b
}

// WithPreview writes a contact sheet to path.
func (b *ConfigBuilder) WithPreview(path string) *ConfigBuilder {
	b.config.PreviewPath = path
	return b
}

// WithDryRun processes every frame without writing output.
func (b *ConfigBuilder) WithDryRun(dryRun bool) *ConfigBuilder {
	b.config.DryRun = dryRun
	return b
}

// WithPreviewColors overrides the contact sheet colors. Nil keeps the current color.
func (b *ConfigBuilder) WithPreviewColors(background, label color.Color) *ConfigBuilder {
	if background != nil {
		b.config.PreviewTheme.BackgroundColor = background
	}
	if label != nil {
		b.config.PreviewTheme.LabelColor = label
	}
	return b
}
