// Package videosink feeds processed frames to a streaming video encoder.
package videosink

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/timelapse/pkg/geometry"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Options configures the video output.
type Options struct {
	OutputPath string
	Container  ports.Container
	FPS        int
	CRF        int

	// Resolution is the target frame size. Nil keeps the cropped size.
	Resolution *pipeline.Dimension
}

// Sink starts the encoder on the first frame, so the stream size always
// matches the frames actually produced.
type Sink struct {
	opts      Options
	encoder   ports.VideoEncoder
	inspector ports.VideoInspector
	fs        ports.FileSystem
	logger    ports.Logger

	started bool
	input   pipeline.Dimension
	output  pipeline.Dimension
	frames  int
	bytes   int64
}

// New creates a new video sink. inspector may be nil to skip verification.
func New(opts Options, encoder ports.VideoEncoder, inspector ports.VideoInspector, fs ports.FileSystem, logger ports.Logger) *Sink {
	return &Sink{
		opts:      opts,
		encoder:   encoder,
		inspector: inspector,
		fs:        fs,
		logger:    logger.WithComponent("video"),
	}
}

// WriteFrame appends a frame to the stream.
func (s *Sink) WriteFrame(index int, sourcePath string, img image.Image) error {
	b := img.Bounds()
	size := pipeline.Dimension{Width: b.Dx(), Height: b.Dy()}

	if !s.started {
		if err := s.begin(size); err != nil {
			return err
		}
	}
	if size != s.input {
		return &pipeline.EncodeError{
			Target: s.opts.OutputPath,
			Cause:  fmt.Errorf("frame %d is %s but the stream is %s", index, size, s.input),
		}
	}
	if err := s.encoder.EncodeFrame(img); err != nil {
		return &pipeline.EncodeError{Target: s.opts.OutputPath, Cause: err}
	}
	s.frames++
	return nil
}

func (s *Sink) begin(size pipeline.Dimension) error {
	encOpts := ports.EncoderOptions{
		OutputPath: s.opts.OutputPath,
		Container:  s.opts.Container,
		FPS:        s.opts.FPS,
		CRF:        s.opts.CRF,
	}

	s.output = geometry.Even(size)
	if target := s.opts.Resolution; target != nil {
		if d := geometry.AspectDifference(size, *target); d > geometry.AspectTolerance {
			s.logger.Warn("Frame aspect %s differs from target %s; fitting inside it", size, *target)
		}
		s.output = geometry.FitResolution(size, *target)
		encOpts.ScaleWidth, encOpts.ScaleHeight = s.output.Width, s.output.Height
	}

	s.logger.Debug("Starting %s stream %s -> %s at %d fps, crf %d", s.opts.Container, size, s.output, s.opts.FPS, s.opts.CRF)
	if err := s.encoder.Begin(size.Width, size.Height, encOpts); err != nil {
		return &pipeline.EncodeError{Target: s.opts.OutputPath, Cause: err}
	}
	s.started = true
	s.input = size
	return nil
}

// Close finishes the stream and verifies the written file when possible.
func (s *Sink) Close() error {
	if !s.started {
		return &pipeline.EncodeError{Target: s.opts.OutputPath, Cause: fmt.Errorf("no frames were written")}
	}
	if err := s.encoder.End(); err != nil {
		return &pipeline.EncodeError{Target: s.opts.OutputPath, Cause: err}
	}
	if err := s.verify(); err != nil {
		if rmErr := s.fs.Remove(s.opts.OutputPath); rmErr != nil {
			s.logger.Warn("Failed to remove unverified video %s: %v", s.opts.OutputPath, rmErr)
			err = errors.Join(err, fmt.Errorf("remove unverified output: %w", rmErr))
		}
		return &pipeline.EncodeError{Target: s.opts.OutputPath, Cause: err}
	}
	if size, err := s.fs.Size(s.opts.OutputPath); err == nil {
		s.bytes = size
	}
	return nil
}

func (s *Sink) verify() error {
	if s.inspector == nil || !s.opts.Container.IsISOBMFF() {
		return nil
	}
	info, err := s.inspector.Inspect(s.opts.OutputPath)
	if err != nil {
		return fmt.Errorf("verify output: %w", err)
	}
	if info.Codec != "h264" {
		return fmt.Errorf("verify output: expected h264 video, found %s", info.Codec)
	}
	if info.SampleCount != s.frames {
		return fmt.Errorf("verify output: wrote %d frames but the file holds %d", s.frames, info.SampleCount)
	}
	s.logger.Debug("Verified %s: %d samples, %dx%d", s.opts.OutputPath, info.SampleCount, info.Width, info.Height)
	return nil
}

// Abort stops the encoder and discards the partial video.
func (s *Sink) Abort() error {
	if !s.started {
		return nil
	}
	s.started = false
	return s.encoder.Abort()
}

// Report describes the encoded video.
func (s *Sink) Report() ports.OutputReport {
	files := 0
	if s.bytes > 0 {
		files = 1
	}
	return ports.OutputReport{
		Path:   s.opts.OutputPath,
		Files:  files,
		Bytes:  s.bytes,
		Codec:  "h264/" + string(s.opts.Container),
		Width:  s.output.Width,
		Height: s.output.Height,
	}
}

var (
	_ ports.OutputSink     = (*Sink)(nil)
	_ ports.OutputReporter = (*Sink)(nil)
)
