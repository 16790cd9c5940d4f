package ports

import (
	"image"
	"strings"
)

// Container is the video file format produced by the encoder.
type Container string

const (
	ContainerMP4 Container = "mp4"
	ContainerMOV Container = "mov"
	ContainerAVI Container = "avi"
)

// ParseContainer maps a format name to a Container.
func ParseContainer(s string) (Container, bool) {
	switch c := Container(strings.ToLower(strings.TrimPrefix(s, "."))); c {
	case ContainerMP4, ContainerMOV, ContainerAVI:
		return c, true
	default:
		return "", false
	}
}

// IsISOBMFF reports whether the container is built from MP4-style boxes.
func (c Container) IsISOBMFF() bool {
	return c == ContainerMP4 || c == ContainerMOV
}

// VideoEncoder abstracts a streaming video encoder.
// Frames must be delivered in presentation order.
type VideoEncoder interface {
	// Begin starts a stream of width x height frames.
	Begin(width, height int, opts EncoderOptions) error

	// EncodeFrame appends the next frame to the stream.
	EncodeFrame(img image.Image) error

	// End finishes the stream and moves the result to opts.OutputPath.
	End() error

	// Abort stops encoding and discards any partial output.
	Abort() error
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	OutputPath string
	Container  Container
	FPS        int // 1-120
	CRF        int // 0-51, lower is higher quality

	// ScaleWidth and ScaleHeight resize the stream on output. Zero keeps the input size.
	ScaleWidth  int
	ScaleHeight int
}

// VideoInfo describes an encoded video file.
type VideoInfo struct {
	Codec       string
	Width       int
	Height      int
	SampleCount int
	DurationMs  int
}

// VideoInspector reads back an encoded video to check what was written.
type VideoInspector interface {
	Inspect(path string) (VideoInfo, error)
}
