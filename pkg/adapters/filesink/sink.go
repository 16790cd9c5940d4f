// Package filesink writes processed frames as individual still images.
package filesink

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Sink writes each frame to <dir>/<stem>_processed.<ext>.
// Frames arrive from a single collector goroutine, so no locking is needed.
type Sink struct {
	dir     string
	format  ports.ImageFormat
	quality int
	fs      ports.FileSystem
	codec   ports.ImageCodec
	logger  ports.Logger

	created bool
	written []string
	names   map[string]int
	bytes   int64
	size    pipeline.Dimension
}

// New creates a new still image sink. quality applies to JPEG only.
func New(dir string, format ports.ImageFormat, quality int, fs ports.FileSystem, codec ports.ImageCodec, logger ports.Logger) *Sink {
	return &Sink{
		dir:     dir,
		format:  format,
		quality: quality,
		fs:      fs,
		codec:   codec,
		logger:  logger.WithComponent("filesink"),
		names:   make(map[string]int),
	}
}

// OutputName returns the file name written for a source image.
func OutputName(sourcePath string, format ports.ImageFormat) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_processed." + format.Extension()
}

// WriteFrame encodes and writes one frame.
func (s *Sink) WriteFrame(index int, sourcePath string, img image.Image) error {
	if !s.created {
		if err := s.fs.MkdirAll(s.dir); err != nil {
			return &pipeline.EncodeError{Target: s.dir, Cause: err}
		}
		s.created = true
	}

	name := OutputName(sourcePath, s.format)
	if prev, dup := s.names[name]; dup {
		return &pipeline.EncodeError{Target: name, Cause: fmt.Errorf("frames %d and %d map to the same output file", prev, index)}
	}
	path := filepath.Join(s.dir, name)

	data, err := s.codec.Encode(img, s.format, s.quality)
	if err != nil {
		var ee *pipeline.EncodeError
		if errors.As(err, &ee) {
			err = ee.Cause
		}
		return &pipeline.EncodeError{Target: path, Cause: err}
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return &pipeline.EncodeError{Target: path, Cause: err}
	}

	s.names[name] = index
	s.written = append(s.written, path)
	s.bytes += int64(len(data))
	if s.size.Width == 0 {
		b := img.Bounds()
		s.size = pipeline.Dimension{Width: b.Dx(), Height: b.Dy()}
	}
	s.logger.Debug("Wrote frame %d to %s", index, path)
	return nil
}

// Close finishes the batch. Every file is already complete on disk.
func (s *Sink) Close() error {
	s.logger.Debug("Wrote %d images (%d bytes)", len(s.written), s.bytes)
	return nil
}

// Abort removes the files written so far.
func (s *Sink) Abort() error {
	var errs []error
	for _, path := range s.written {
		if err := s.fs.Remove(path); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.written) > 0 {
		s.logger.Debug("Removed %d partial outputs", len(s.written))
	}
	s.written = nil
	s.bytes = 0
	return errors.Join(errs...)
}

// Report describes the written files.
func (s *Sink) Report() ports.OutputReport {
	return ports.OutputReport{
		Path:   s.dir,
		Files:  len(s.written),
		Bytes:  s.bytes,
		Codec:  s.format.String(),
		Width:  s.size.Width,
		Height: s.size.Height,
	}
}

var (
	_ ports.OutputSink     = (*Sink)(nil)
	_ ports.OutputReporter = (*Sink)(nil)
)
