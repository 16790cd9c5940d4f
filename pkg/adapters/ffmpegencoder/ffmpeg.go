// Package ffmpegencoder streams raw frames into an ffmpeg subprocess that
// writes H.264 video in an MP4, MOV or AVI container.
package ffmpegencoder

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"sync"

	"github.com/user/timelapse/pkg/ports"
)

var (
	pathMu           sync.RWMutex
	customFFmpegPath string
)

// SetFFmpegPath overrides ffmpeg discovery. An empty path restores the default search.
func SetFFmpegPath(path string) {
	pathMu.Lock()
	defer pathMu.Unlock()
	customFFmpegPath = path
}

// IsFFmpegAvailable checks if ffmpeg is available on the system.
func IsFFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg locates the ffmpeg executable.
// Priority: 1) SetFFmpegPath, 2) FFMPEG_PATH env, 3) PATH, 4) common install locations.
func FindFFmpeg() (string, error) {
	pathMu.RLock()
	custom := customFFmpegPath
	pathMu.RUnlock()

	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrFFmpegNotFound, custom)
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: FFMPEG_PATH %s not found", ErrFFmpegNotFound, envPath)
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, p := range commonPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrFFmpegNotFound
}

func commonPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
}

// validateOptions checks the encoder options against the ranges ffmpeg accepts.
func validateOptions(opts ports.EncoderOptions) error {
	if opts.FPS < 1 || opts.FPS > 120 {
		return fmt.Errorf("%w: fps %d outside 1-120", ErrInvalidOptions, opts.FPS)
	}
	if opts.CRF < 0 || opts.CRF > 51 {
		return fmt.Errorf("%w: crf %d outside 0-51", ErrInvalidOptions, opts.CRF)
	}
	if _, ok := ports.ParseContainer(string(opts.Container)); !ok {
		return fmt.Errorf("%w: unknown container %q", ErrInvalidOptions, opts.Container)
	}
	if (opts.ScaleWidth == 0) != (opts.ScaleHeight == 0) || opts.ScaleWidth < 0 || opts.ScaleHeight < 0 {
		return fmt.Errorf("%w: scale %dx%d", ErrInvalidOptions, opts.ScaleWidth, opts.ScaleHeight)
	}
	return nil
}

// buildArgs returns the ffmpeg command line for a raw RGBA stream of width x height frames.
func buildArgs(width, height int, opts ports.EncoderOptions, output string) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(opts.FPS),
		"-i", "pipe:0",
		"-an",
		"-c:v", "libx264",
		"-preset", "medium",
		"-crf", strconv.Itoa(opts.CRF),
		"-pix_fmt", "yuv420p",
	}

	// yuv420p needs even dimensions.
	switch {
	case opts.ScaleWidth > 0:
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", opts.ScaleWidth, opts.ScaleHeight))
	case width%2 != 0 || height%2 != 0:
		args = append(args, "-vf", fmt.Sprintf("pad=%d:%d", width+width%2, height+height%2))
	}

	if opts.Container.IsISOBMFF() {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, "-f", string(opts.Container), output)
}
