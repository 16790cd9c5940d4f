package ports

import (
	"image"
)

// OutputSink receives processed frames strictly in ascending frame order.
type OutputSink interface {
	// WriteFrame consumes the next frame.
	WriteFrame(index int, sourcePath string, img image.Image) error

	// Close finalizes the output.
	Close() error

	// Abort discards whatever has been written so far.
	Abort() error
}

// OutputReport summarizes what a sink produced.
type OutputReport struct {
	Path   string // output file or directory
	Files  int
	Bytes  int64
	Codec  string
	Width  int
	Height int
}

// OutputReporter is implemented by sinks that can describe their output after Close.
type OutputReporter interface {
	Report() OutputReport
}

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlan saves the resolved per-frame plan.
	SavePlan(data []byte) error

	// SaveFrame saves a processed frame.
	SaveFrame(index int, img image.Image) error
}
