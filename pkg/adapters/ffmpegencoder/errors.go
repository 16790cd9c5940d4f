package ffmpegencoder

import "errors"

var (
	// ErrNotInitialized is returned when frames are sent before Begin or after End.
	ErrNotInitialized = errors.New("ffmpegencoder: encoder not initialized")

	// ErrAlreadyStarted is returned when Begin is called twice.
	ErrAlreadyStarted = errors.New("ffmpegencoder: encoder already started")

	// ErrInvalidOptions is returned when fps, CRF or the container are out of range.
	ErrInvalidOptions = errors.New("ffmpegencoder: invalid options")

	// ErrFrameSize is returned when a frame does not match the size given to Begin.
	ErrFrameSize = errors.New("ffmpegencoder: frame size mismatch")

	// ErrEncodingFailed is returned when ffmpeg exits with an error.
	ErrEncodingFailed = errors.New("ffmpegencoder: encoding failed")

	// ErrFFmpegNotFound is returned when no ffmpeg executable can be located.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found")
)
