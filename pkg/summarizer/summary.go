// Package summarizer provides summary generation for timelapse runs.
package summarizer

import (
	"time"

	"github.com/google/uuid"
)

// Summary contains all data collected during a run.
type Summary struct {
	// Metadata
	RunID       string
	GeneratedAt time.Time

	Input      InputInfo
	Settings   Settings
	Processing ProcessingInfo
	Output     OutputInfo
}

// InputInfo describes the source sequence.
type InputInfo struct {
	Dir          string
	SourceImages int
	FirstFrame   int
	LastFrame    int
}

// Settings contains the effective run configuration. Keyframe lists are
// kept in their comma-separated form.
type Settings struct {
	Format        string
	Interpolation string
	Crop          string
	Exposure      string
	Brightness    string
	Contrast      string
	Saturation    string
	OffsetX       string
	OffsetY       string

	Quality    int // JPEG quality, stills only
	FPS        int
	CRF        int
	Resolution string
	Workers    int
}

// ProcessingInfo contains measurements of the run.
type ProcessingInfo struct {
	Frames       int
	Workers      int
	PeakBuffered int
	DryRun       bool

	PlanMs   int64
	RenderMs int64
	TotalMs  int64
}

// OutputInfo describes what was written.
type OutputInfo struct {
	Path            string
	Files           int
	Bytes           int64
	Codec           string
	Width           int
	Height          int
	VideoDurationMs int64 // zero for stills
}

// NewSummary creates a new Summary with a fresh run ID and the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets the source sequence information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithSettings sets the run settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithProcessing sets frame counts and timings.
func (b *Builder) WithProcessing(processing ProcessingInfo) *Builder {
	b.summary.Processing = processing
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
