package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/user/timelapse/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

// String formats the dimension as WIDTHxHEIGHT.
func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Area returns the number of pixels.
func (d Dimension) Area() int {
	return d.Width * d.Height
}

// Rectangle represents a rectangular area in source image pixels.
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

// String formats the rectangle as w:h:x:y, the same order used by crop specs.
func (r Rectangle) String() string {
	return fmt.Sprintf("%d:%d:%d:%d", r.Width, r.Height, r.X, r.Y)
}

// Size returns the rectangle dimensions.
func (r Rectangle) Size() Dimension {
	return Dimension{Width: r.Width, Height: r.Height}
}

// Within reports whether the rectangle lies entirely inside an image of the given size.
// The edges are compared by subtraction so huge values cannot wrap around.
func (r Rectangle) Within(d Dimension) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.Width > 0 && r.Height > 0 &&
		r.Width <= d.Width && r.Height <= d.Height &&
		r.X <= d.Width-r.Width && r.Y <= d.Height-r.Height
}

// Bounds converts the rectangle to an image.Rectangle anchored at origin.
func (r Rectangle) Bounds(origin image.Point) image.Rectangle {
	min := origin.Add(image.Pt(r.X, r.Y))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(r.Width, r.Height))}
}

// Adjustments holds the tonal parameters applied to one frame.
type Adjustments struct {
	Exposure   float64 // EV stops, -3..3
	Brightness float64 // -100..100
	Contrast   float64 // (0, 3], 1 = identity
	Saturation float64 // 0..2, 1 = identity
}

// IdentityAdjustments returns adjustments that leave pixels unchanged.
func IdentityAdjustments() Adjustments {
	return Adjustments{Contrast: 1, Saturation: 1}
}

// IsIdentity reports whether applying the adjustments is a no-op.
func (a Adjustments) IsIdentity() bool {
	return a == IdentityAdjustments()
}

// =============================================================================
// Plan Stage Types
// =============================================================================

// KeyframeSet holds the raw keyframe arrays for every adjustable parameter.
// A nil slice means the parameter was not configured.
type KeyframeSet struct {
	Exposure   []float64
	Brightness []float64
	Contrast   []float64
	Saturation []float64
	OffsetX    []float64
	OffsetY    []float64
}

// DefaultKeyframeSet returns identity keyframes with no offsets.
func DefaultKeyframeSet() KeyframeSet {
	return KeyframeSet{
		Exposure:   []float64{0},
		Brightness: []float64{0},
		Contrast:   []float64{1},
		Saturation: []float64{1},
	}
}

// PlanInput contains everything needed to validate a run and build its jobs.
type PlanInput struct {
	// Sources are the selected image paths in frame order.
	Sources []string

	// FirstIndex is the global frame index of Sources[0].
	FirstIndex int

	// TotalFrames is the number of frames the schedules span.
	// Sub-range runs interpolate over the full sequence.
	TotalFrames int

	Keyframes     KeyframeSet
	Interpolation string // "linear" (default) or "bezier"
	Crop          string // width:height:x:y, empty for none
}

// ScheduleSet holds the per-frame values of each parameter for the selected range.
type ScheduleSet struct {
	Exposure   []float64
	Brightness []float64
	Contrast   []float64
	Saturation []float64
	OffsetX    []float64
	OffsetY    []float64
}

// PlanResult contains the validated jobs for a run.
type PlanResult struct {
	Jobs      []FrameJob
	Schedules ScheduleSet

	// Output is the size of the first frame after cropping.
	Output Dimension
}

// =============================================================================
// Frame Types
// =============================================================================

// FrameJob is a self-contained unit of work for one frame.
type FrameJob struct {
	Index       int // global frame index
	SourcePath  string
	Source      Dimension
	Rect        Rectangle
	Adjustments Adjustments
}

// FrameResult is the transformed output of one job.
type FrameResult struct {
	Index      int
	SourcePath string
	Image      image.Image
}

// =============================================================================
// Render Stage Types
// =============================================================================

// RenderInput contains the jobs to run and the sink receiving frames in order.
type RenderInput struct {
	Jobs    []FrameJob
	Sink    ports.OutputSink
	Workers int // 0 selects the stage default
}

// RenderResult reports how the render stage went.
type RenderResult struct {
	Frames       int           // frames emitted to the sink
	Workers      int           // workers actually started
	PeakBuffered int           // largest number of frames held for reordering
	Elapsed      time.Duration // wall time of the stage
}

// =============================================================================
// Preview Types
// =============================================================================

// PreviewTheme defines contact sheet styling.
type PreviewTheme struct {
	BackgroundColor color.Color
	LabelColor      color.Color
	CellWidth       int
	Gap             int
	LabelHeight     int
	MaxThumbnails   int
}

// DefaultPreviewTheme returns the default contact sheet theme.
func DefaultPreviewTheme() PreviewTheme {
	return PreviewTheme{
		BackgroundColor: color.RGBA{R: 24, G: 24, B: 28, A: 255},
		LabelColor:      color.RGBA{R: 230, G: 230, B: 230, A: 255},
		CellWidth:       320,
		Gap:             12,
		LabelHeight:     20,
		MaxThumbnails:   16,
	}
}
