package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/timelapse/pkg/ports"
)

func TestConsoleLogger_Streams(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleWriter(ports.LevelInfo, &out, &errOut)

	log.Debug("hidden %d", 1)
	log.Info("Output saved to %s", "/out")
	log.Warn("Failed to save debug frame: %v", "disk full")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "/out") {
		t.Errorf("expected info on stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "disk full") || strings.Contains(out.String(), "disk full") {
		t.Errorf("expected warning on stderr only, got stdout %q stderr %q", out.String(), errOut.String())
	}
}

func TestConsoleLogger_Component(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleWriter(ports.LevelDebug, &out, &out).WithComponent("video")
	log.Debug("Encoded %d frames to %s", 3, "a.mp4")

	if got := out.String(); got != "[video] Encoded 3 frames to a.mp4\n" {
		t.Errorf("unexpected line %q", got)
	}
}

func TestConsoleLogger_PreformattedPercent(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleWriter(ports.LevelInfo, &out, &out)
	log.Info("Crop: 50%:50%:-10%:0")

	if got := out.String(); got != "Crop: 50%:50%:-10%:0\n" {
		t.Errorf("message was reformatted: %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleWriter(ports.LevelQuiet, &out, &out)
	log.Error("Failed to render frames: %s", "boom")
	if out.Len() != 0 {
		t.Errorf("quiet logger wrote %q", out.String())
	}
}
