// Package nullsink provides sinks that discard everything they receive.
package nullsink

import (
	"image"

	"github.com/user/timelapse/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SavePlan does nothing.
func (s *Sink) SavePlan(data []byte) error {
	return nil
}

// SaveFrame does nothing.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)

// Output is an OutputSink that counts frames and discards them. Dry runs use it
// to decode and transform every source without producing files.
type Output struct {
	frames int
	width  int
	height int
}

// NewOutput creates a new discarding output sink.
func NewOutput() *Output {
	return &Output{}
}

// WriteFrame counts the frame.
func (o *Output) WriteFrame(index int, sourcePath string, img image.Image) error {
	if o.frames == 0 {
		b := img.Bounds()
		o.width, o.height = b.Dx(), b.Dy()
	}
	o.frames++
	return nil
}

// Close does nothing.
func (o *Output) Close() error {
	return nil
}

// Abort does nothing.
func (o *Output) Abort() error {
	return nil
}

// Report returns the frame count with no files.
func (o *Output) Report() ports.OutputReport {
	return ports.OutputReport{Files: 0, Codec: "none", Width: o.width, Height: o.height}
}

// Frames returns the number of frames received.
func (o *Output) Frames() int {
	return o.frames
}

var (
	_ ports.OutputSink     = (*Output)(nil)
	_ ports.OutputReporter = (*Output)(nil)
)
