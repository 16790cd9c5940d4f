// Package progress provides ProgressObserver implementations.
package progress

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/timelapse/pkg/ports"
)

// Bar draws a terminal progress bar.
type Bar struct {
	mu          sync.Mutex
	out         io.Writer
	description string
	bar         *progressbar.ProgressBar
}

// NewBar creates a progress bar writing to out.
func NewBar(out io.Writer, description string) *Bar {
	return &Bar{out: out, description: description}
}

func (b *Bar) OnStart(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription(b.description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

// OnFrameDone advances the bar by one frame. done may arrive out of order
// from concurrent workers, so it is not used as an absolute position.
func (b *Bar) OnFrameDone(done, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		b.bar.Add(1)
	}
}

func (b *Bar) OnFinish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar != nil {
		b.bar.Finish()
		b.bar = nil
	}
}

// LogObserver reports progress through a Logger in steps of 10%.
type LogObserver struct {
	mu     sync.Mutex
	logger ports.Logger
	step   int
}

// NewLogObserver creates an observer for non-interactive output.
func NewLogObserver(logger ports.Logger) *LogObserver {
	return &LogObserver{logger: logger.WithComponent("progress")}
}

func (l *LogObserver) OnStart(total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.step = 0
}

func (l *LogObserver) OnFrameDone(done, total int) {
	if total <= 0 {
		return
	}
	step := done * 10 / total
	l.mu.Lock()
	defer l.mu.Unlock()
	if step <= l.step {
		return
	}
	l.step = step
	l.logger.Info("Processed %d/%d frames (%d%%)", done, total, step*10)
}

func (l *LogObserver) OnFinish() {}

// Noop ignores progress.
type Noop struct{}

func (Noop) OnStart(total int)           {}
func (Noop) OnFrameDone(done, total int) {}
func (Noop) OnFinish()                   {}

// ForTerminal picks a Bar when f is a terminal, else a LogObserver.
func ForTerminal(f *os.File, logger ports.Logger) ports.ProgressObserver {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return NewBar(f, "Processing")
	}
	return NewLogObserver(logger)
}

var (
	_ ports.ProgressObserver = (*Bar)(nil)
	_ ports.ProgressObserver = (*LogObserver)(nil)
	_ ports.ProgressObserver = Noop{}
)
