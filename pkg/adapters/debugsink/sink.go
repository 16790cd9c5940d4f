// Package debugsink saves intermediate results of a run for inspection.
package debugsink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/timelapse/pkg/ports"
)

// Sink saves debug output under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	codec   ports.ImageCodec
}

// New creates a new debug sink.
func New(baseDir string, fs ports.FileSystem, codec ports.ImageCodec) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		codec:   codec,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePlan saves the resolved plan as plan.yaml.
func (s *Sink) SavePlan(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "plan.yaml"), data)
}

// SaveFrame saves a processed frame as PNG.
func (s *Sink) SaveFrame(index int, img image.Image) error {
	data, err := s.codec.Encode(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode debug frame: %w", err)
	}
	path := filepath.Join(s.baseDir, "frames", fmt.Sprintf("frame-%06d.png", index))
	return s.fs.WriteFile(path, data)
}

var _ ports.DebugSink = (*Sink)(nil)
