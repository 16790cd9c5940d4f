package pipeline

import (
	"errors"
	"fmt"
)

// ParseError reports a malformed crop, resolution or keyframe specification.
type ParseError struct {
	Input  string // the full specification
	Token  string // the offending part, if known
	Reason string
}

func (e *ParseError) Error() string {
	if e.Token != "" && e.Token != e.Input {
		return fmt.Sprintf("parse %q: invalid token %q: %s", e.Input, e.Token, e.Reason)
	}
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

// ConfigurationError reports a well-formed value that is not acceptable,
// such as a keyframe outside its domain or offsets given without a crop.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Configf builds a ConfigurationError with a formatted reason.
func Configf(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// BoundaryError reports a resolved crop rectangle that does not fit inside its source image.
type BoundaryError struct {
	FrameIndex int
	Requested  Rectangle
	Image      Dimension
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("frame %d: crop %dx%d at (%d,%d) exceeds image bounds %s",
		e.FrameIndex, e.Requested.Width, e.Requested.Height, e.Requested.X, e.Requested.Y, e.Image)
}

// DecodeError reports an unreadable or corrupt source image.
type DecodeError struct {
	Path  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// EncodeError reports a failure producing output, either a still image or the video stream.
type EncodeError struct {
	Target string
	Cause  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Target, e.Cause)
}

func (e *EncodeError) Unwrap() error { return e.Cause }

// PipelineError attaches the originating frame index to a failure inside the render pipeline.
type PipelineError struct {
	FrameIndex int
	Cause      error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.FrameIndex, e.Cause)
}

func (e *PipelineError) Unwrap() error { return e.Cause }

// IsValidation reports whether err is one of the errors raised before any image I/O.
func IsValidation(err error) bool {
	var pe *ParseError
	var ce *ConfigurationError
	var be *BoundaryError
	return errors.As(err, &pe) || errors.As(err, &ce) || errors.As(err, &be)
}
