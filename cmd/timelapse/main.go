// Package main provides the CLI entry point for timelapse.
package main

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/timelapse/pkg/pipeline"
)

var version = "dev"

// Flag categories
const (
	catAdjustments = "Adjustments"
	catGeometry    = "Geometry"
	catOutput      = "Output"
	catRange       = "Range"
	catPerformance = "Performance"
	catConfig      = "Configuration"
	catReports     = "Reports"
	catRunMode     = "Run Mode"
	catLogging     = "Logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		if pipeline.IsValidation(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "timelapse",
		Usage:   l10n.T("Process image sequences into timelapse stills or video"),
		Version: version,
		Description: l10n.T("timelapse crops, pans and color-grades a numbered image sequence " +
			"with keyframed adjustments and writes the result as images or an H.264 video."),
		Commands: []*cli.Command{
			processCommand(),
		},
	}
}

func processCommand() *cli.Command {
	return &cli.Command{
		Name:  "process",
		Usage: l10n.T("Process an image sequence"),
		Description: l10n.T("Read every image in the input directory in natural order, apply keyframed " +
			"adjustments and write stills or a video to the output directory."),
		Flags:  processFlags(),
		Action: runProcess,
	}
}

func processFlags() []cli.Flag {
	return []cli.Flag{
		// Input/Output
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: l10n.T("Input directory of source images"), Category: l10n.T(catOutput)},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output directory"), Category: l10n.T(catOutput)},

		// Adjustments
		&cli.StringFlag{Name: "exposure", Usage: l10n.T("Exposure keyframes in EV stops, comma-separated (-3 to 3)"), Category: l10n.T(catAdjustments)},
		&cli.StringFlag{Name: "brightness", Usage: l10n.T("Brightness keyframes, comma-separated (-100 to 100)"), Category: l10n.T(catAdjustments)},
		&cli.StringFlag{Name: "contrast", Usage: l10n.T("Contrast keyframes, comma-separated (0 to 3, 1 = unchanged)"), Category: l10n.T(catAdjustments)},
		&cli.StringFlag{Name: "saturation", Usage: l10n.T("Saturation keyframes, comma-separated (0 to 2, 1 = unchanged)"), Category: l10n.T(catAdjustments)},
		&cli.StringFlag{Name: "interpolation", Usage: l10n.T("Keyframe interpolation (linear, bezier)"), Category: l10n.T(catAdjustments)},

		// Geometry
		&cli.StringFlag{Name: "crop", Usage: l10n.T("Crop as WIDTH:HEIGHT:X:Y in pixels or percent"), Category: l10n.T(catGeometry)},
		&cli.StringFlag{Name: "offset-x", Usage: l10n.T("Horizontal crop offset keyframes in pixels"), Category: l10n.T(catGeometry)},
		&cli.StringFlag{Name: "offset-y", Usage: l10n.T("Vertical crop offset keyframes in pixels"), Category: l10n.T(catGeometry)},

		// Output
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: l10n.T("Output format (jpg, png, tiff, mp4, mov, avi)"), Category: l10n.T(catOutput)},
		&cli.IntFlag{Name: "fps", Usage: l10n.T("Video frame rate (1-120)"), Category: l10n.T(catOutput)},
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Usage: l10n.T("Quality preset (low, medium, high)"), Category: l10n.T(catOutput)},
		&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Usage: l10n.T("JPEG quality (1-100) or video CRF (0-51), overrides preset"), Category: l10n.T(catOutput)},
		&cli.StringFlag{Name: "resolution", Usage: l10n.T("Video resolution (WIDTHxHEIGHT, 4k, hd, 1080p, 720p)"), Category: l10n.T(catOutput)},
		&cli.StringFlag{Name: "ffmpeg-path", Usage: l10n.T("Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)"), Category: l10n.T(catOutput)},

		// Range
		&cli.IntFlag{Name: "start-frame", Usage: l10n.T("First frame to process (0-based)"), Category: l10n.T(catRange)},
		&cli.IntFlag{Name: "end-frame", Usage: l10n.T("Last frame to process (inclusive, default: last image)"), Category: l10n.T(catRange)},

		// Performance
		&cli.IntFlag{Name: "threads", Aliases: []string{"t"}, Usage: l10n.T("Number of worker threads (0 = one per CPU)"), Category: l10n.T(catPerformance)},

		// Configuration
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML run file, overridden by flags"), Category: l10n.T(catConfig)},

		// Reports
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Output execution summary to file (Markdown format)"), Category: l10n.T(catReports)},
		&cli.StringFlag{Name: "preview", Usage: l10n.T("Write a contact sheet of sampled frames to this PNG file"), Category: l10n.T(catReports)},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output"), Category: l10n.T(catReports)},

		// Run mode
		&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: l10n.T("Decode and process every frame without writing output"), Category: l10n.T(catRunMode)},

		// Logging
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T(catLogging)},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T(catLogging)},
		&cli.BoolFlag{Name: "no-progress", Usage: l10n.T("Disable the progress bar"), Category: l10n.T(catLogging)},
	}
}
