// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/timelapse"
)

// Config represents a run file. Keyframe lists are YAML sequences.
type Config struct {
	// Input/Output
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Output format
	Format     string `yaml:"format"`
	Preset     string `yaml:"preset"`
	Quality    *int   `yaml:"quality"` // JPEG quality, overrides preset
	CRF        *int   `yaml:"crf"`     // overrides preset
	FPS        int    `yaml:"fps"`
	Resolution string `yaml:"resolution"`

	// Adjustments
	Crop          string          `yaml:"crop"`
	Interpolation string          `yaml:"interpolation"`
	Keyframes     KeyframesConfig `yaml:"keyframes"`

	// Range
	Range RangeConfig `yaml:"range"`

	// Performance
	Threads int `yaml:"threads"`

	// Reports
	Preview      string      `yaml:"preview"`
	PreviewTheme ThemeConfig `yaml:"preview_theme"`
	Summary      string      `yaml:"summary"`
	DebugDir     string      `yaml:"debug_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// KeyframesConfig holds the keyframe lists of every parameter.
type KeyframesConfig struct {
	Exposure   []float64 `yaml:"exposure"`
	Brightness []float64 `yaml:"brightness"`
	Contrast   []float64 `yaml:"contrast"`
	Saturation []float64 `yaml:"saturation"`
	OffsetX    []float64 `yaml:"offset_x"`
	OffsetY    []float64 `yaml:"offset_y"`
}

// RangeConfig selects frames start..end inclusive. A negative end means the last frame.
type RangeConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// ThemeConfig represents contact sheet colors.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	LabelColor      string `yaml:"label_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Format: "jpg",
		Preset: string(timelapse.QualityMedium),
		FPS:    24,

		Range: RangeConfig{Start: 0, End: -1},

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file over Defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	cfg, err := Load(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load parses YAML over Defaults. Unknown keys are rejected.
func Load(data []byte) (Config, error) {
	cfg := Defaults()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	if _, ok := timelapse.ParseQualityPreset(cfg.Preset); !ok {
		return cfg, pipeline.Configf("preset", "unknown preset %q (want low, medium or high)", cfg.Preset)
	}
	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
// Malformed values yield nil.
func ParseColor(hex string) color.Color {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return nil
	}

	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexValue(hex[2*i])
		lo, ok2 := hexValue(hex[2*i+1])
		if !ok1 || !ok2 {
			return nil
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// Builder returns a ConfigBuilder seeded from the file, so command-line
// flags can be applied on top.
func (c Config) Builder() *timelapse.ConfigBuilder {
	b := timelapse.NewConfigBuilder(c.Input, c.Output).
		WithFormat(c.Format).
		WithFPS(c.FPS).
		WithResolution(c.Resolution).
		WithCrop(c.Crop).
		WithInterpolation(c.Interpolation).
		WithRange(c.Range.Start, c.Range.End).
		WithWorkers(c.Threads).
		WithPreview(c.Preview)

	if preset, ok := timelapse.ParseQualityPreset(c.Preset); ok {
		b.WithQualityPreset(preset)
	}
	if c.Quality != nil {
		b.WithJPEGQuality(*c.Quality)
	}
	if c.CRF != nil {
		b.WithCRF(*c.CRF)
	}

	kf := c.Keyframes
	if kf.Exposure != nil {
		b.WithExposure(kf.Exposure...)
	}
	if kf.Brightness != nil {
		b.WithBrightness(kf.Brightness...)
	}
	if kf.Contrast != nil {
		b.WithContrast(kf.Contrast...)
	}
	if kf.Saturation != nil {
		b.WithSaturation(kf.Saturation...)
	}
	if kf.OffsetX != nil || kf.OffsetY != nil {
		b.WithOffsets(kf.OffsetX, kf.OffsetY)
	}

	bg := ParseColor(c.PreviewTheme.BackgroundColor)
	label := ParseColor(c.PreviewTheme.LabelColor)
	if bg != nil || label != nil {
		b.WithPreviewColors(bg, label)
	}
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return c.Builder().Build()
}
