package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// Option configures a MarkdownFormatter.
type Option func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(t func(string) string) Option {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) Option {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...Option) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("Timelapse Summary"))
	row := func(label, value string) {
		fmt.Fprintf(&b, "| %s | %s |\n", t(label), value)
	}
	table := func(title string) {
		fmt.Fprintf(&b, "\n## %s\n\n| %s | %s |\n|---|---|\n", t(title), t("Item"), t("Value"))
	}

	table("Run")
	row("Run ID", s.RunID)
	row("Generated At", s.GeneratedAt.Format(time.RFC3339))
	if s.Processing.DryRun {
		row("Mode", t("Dry run"))
	}

	table("Input")
	row("Directory", s.Input.Dir)
	row("Source Images", fmt.Sprintf("%d", s.Input.SourceImages))
	row("Frame Range", fmt.Sprintf("%d-%d", s.Input.FirstFrame, s.Input.LastFrame))

	table("Settings")
	row("Format", s.Settings.Format)
	optional := []struct{ label, value string }{
		{"Interpolation", s.Settings.Interpolation},
		{"Crop", s.Settings.Crop},
		{"Exposure", s.Settings.Exposure},
		{"Brightness", s.Settings.Brightness},
		{"Contrast", s.Settings.Contrast},
		{"Saturation", s.Settings.Saturation},
		{"Offset X", s.Settings.OffsetX},
		{"Offset Y", s.Settings.OffsetY},
		{"Resolution", s.Settings.Resolution},
	}
	for _, o := range optional {
		if o.value != "" {
			row(o.label, o.value)
		}
	}
	if s.Settings.FPS > 0 {
		row("Frame Rate", fmt.Sprintf("%d fps", s.Settings.FPS))
		row("CRF", fmt.Sprintf("%d", s.Settings.CRF))
	} else if s.Settings.Quality > 0 {
		row("JPEG Quality", fmt.Sprintf("%d", s.Settings.Quality))
	}

	table("Processing")
	row("Frames", fmt.Sprintf("%d", s.Processing.Frames))
	row("Workers", fmt.Sprintf("%d", s.Processing.Workers))
	row("Peak Reorder Buffer", fmt.Sprintf("%d", s.Processing.PeakBuffered))
	row("Planning Time", formatMs(s.Processing.PlanMs))
	row("Rendering Time", formatMs(s.Processing.RenderMs))
	row("Processing Time", formatMs(s.Processing.TotalMs))
	if s.Processing.RenderMs > 0 && s.Processing.Frames > 0 {
		fps := float64(s.Processing.Frames) / (float64(s.Processing.RenderMs) / 1000)
		row("Throughput", fmt.Sprintf("%.1f frames/s", fps))
	}

	if !s.Processing.DryRun {
		table("Output")
		row("Path", s.Output.Path)
		if s.Output.Codec != "" {
			row("Codec", s.Output.Codec)
		}
		row("Files", fmt.Sprintf("%d", s.Output.Files))
		row("Size", formatBytes(s.Output.Bytes))
		if s.Output.Width > 0 {
			row("Frame Size", fmt.Sprintf("%dx%d", s.Output.Width, s.Output.Height))
		}
		if s.Output.VideoDurationMs > 0 {
			row("Video Duration", fmt.Sprintf("%.2f s", float64(s.Output.VideoDurationMs)/1000))
		}
	}

	b.WriteString("\n---\n\n")
	if f.version != "" {
		fmt.Fprintf(&b, "%s timelapse %s\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&b, "%s timelapse\n", t("Generated by"))
	}
	return b.String()
}

func formatMs(ms int64) string {
	return fmt.Sprintf("%d ms", ms)
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
