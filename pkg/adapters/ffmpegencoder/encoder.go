package ffmpegencoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/user/timelapse/pkg/ports"
)

// Encoder implements ports.VideoEncoder with an ffmpeg subprocess.
// Output goes to a temporary file next to the destination and is renamed into
// place by End, so an aborted run never leaves a truncated video behind.
type Encoder struct {
	logger ports.Logger

	mu         sync.Mutex
	width      int
	height     int
	opts       ports.EncoderOptions
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     bytes.Buffer
	tempPath   string
	frame      *image.RGBA
	frameCount int
}

// New creates a new ffmpeg encoder.
func New(logger ports.Logger) *Encoder {
	return &Encoder{logger: logger.WithComponent("ffmpeg")}
}

// Begin starts ffmpeg for a stream of width x height frames.
func (e *Encoder) Begin(width, height int, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return ErrAlreadyStarted
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidOptions, width, height)
	}
	if err := validateOptions(opts); err != nil {
		return err
	}

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return err
	}

	dir := filepath.Dir(opts.OutputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".timelapse-*."+string(opts.Container))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	e.tempPath = tmp.Name()
	tmp.Close()

	args := buildArgs(width, height, opts, e.tempPath)
	e.logger.Debug("Starting %s %v", ffmpegPath, args)

	e.stderr.Reset()
	cmd := exec.Command(ffmpegPath, args...)
	cmd.Stderr = &e.stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("get stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.width, e.height = width, height
	e.opts = opts
	e.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	e.frameCount = 0
	return nil
}

// EncodeFrame writes the next frame to ffmpeg's stdin as raw RGBA.
func (e *Encoder) EncodeFrame(img image.Image) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}
	b := img.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("%w: got %dx%d, stream is %dx%d", ErrFrameSize, b.Dx(), b.Dy(), e.width, e.height)
	}

	draw.Draw(e.frame, e.frame.Bounds(), img, b.Min, draw.Src)
	if _, err := e.stdin.Write(e.frame.Pix); err != nil {
		// ffmpeg stopped reading. Stderr is only complete once the process is reaped.
		frame := e.frameCount
		e.stop()
		return fmt.Errorf("%w: write frame %d: %v: %s", ErrEncodingFailed, frame, err, e.stderr.String())
	}
	e.frameCount++
	return nil
}

// End closes the stream, waits for ffmpeg and moves the video into place.
func (e *Encoder) End() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}
	e.stdin.Close()
	e.stdin = nil

	err := e.cmd.Wait()
	e.cmd = nil
	if err != nil {
		os.Remove(e.tempPath)
		e.tempPath = ""
		return fmt.Errorf("%w: %v: %s", ErrEncodingFailed, err, e.stderr.String())
	}

	if err := os.Rename(e.tempPath, e.opts.OutputPath); err != nil {
		os.Remove(e.tempPath)
		e.tempPath = ""
		return fmt.Errorf("move output into place: %w", err)
	}
	e.tempPath = ""
	e.logger.Debug("Encoded %d frames to %s", e.frameCount, e.opts.OutputPath)
	return nil
}

// Abort kills ffmpeg and removes the partial output. It is safe to call at any time.
func (e *Encoder) Abort() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stop()
}

// stop kills and reaps ffmpeg and removes the temp file. Callers hold e.mu.
func (e *Encoder) stop() error {
	var errs []error
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if e.cmd != nil {
		if e.cmd.Process != nil {
			if err := e.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
				errs = append(errs, err)
			}
		}
		e.cmd.Wait()
		e.cmd = nil
	}
	if e.tempPath != "" {
		if err := os.Remove(e.tempPath); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
		e.tempPath = ""
	}
	return errors.Join(errs...)
}

// FrameCount returns the number of frames written since Begin.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

var _ ports.VideoEncoder = (*Encoder)(nil)
