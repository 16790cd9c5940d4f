package geometry

import (
	"math"
	"strconv"
	"strings"

	"github.com/user/timelapse/pkg/pipeline"
)

// AspectTolerance is the largest aspect ratio difference accepted without a warning.
const AspectTolerance = 0.05

var resolutionPresets = map[string]pipeline.Dimension{
	"4k":    {Width: 3840, Height: 2160},
	"hd":    {Width: 1920, Height: 1080},
	"1080p": {Width: 1920, Height: 1080},
	"720p":  {Width: 1280, Height: 720},
}

// ParseResolution parses WIDTHxHEIGHT or one of the named presets 4k, hd, 1080p and 720p.
func ParseResolution(s string) (pipeline.Dimension, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if d, ok := resolutionPresets[key]; ok {
		return d, nil
	}

	w, h, ok := strings.Cut(key, "x")
	if !ok {
		return pipeline.Dimension{}, &pipeline.ParseError{Input: s, Reason: "expected WIDTHxHEIGHT or a preset (4k, hd, 1080p, 720p)"}
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return pipeline.Dimension{}, &pipeline.ParseError{Input: s, Token: w, Reason: "invalid width"}
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return pipeline.Dimension{}, &pipeline.ParseError{Input: s, Token: h, Reason: "invalid height"}
	}
	if width <= 0 || height <= 0 {
		return pipeline.Dimension{}, pipeline.Configf("resolution", "%s must have positive dimensions", s)
	}
	return pipeline.Dimension{Width: width, Height: height}, nil
}

// FitResolution scales src to fit inside target, keeping the aspect ratio of src.
// Both output dimensions are rounded up to even numbers for 4:2:0 encoders.
func FitResolution(src, target pipeline.Dimension) pipeline.Dimension {
	if src.Width <= 0 || src.Height <= 0 {
		return Even(target)
	}
	srcRatio := float64(src.Width) / float64(src.Height)
	targetRatio := float64(target.Width) / float64(target.Height)

	var out pipeline.Dimension
	if srcRatio > targetRatio {
		out = pipeline.Dimension{Width: target.Width, Height: int(math.Round(float64(target.Width) / srcRatio))}
	} else {
		out = pipeline.Dimension{Width: int(math.Round(float64(target.Height) * srcRatio)), Height: target.Height}
	}
	return Even(out)
}

// AspectDifference returns the absolute difference between the aspect ratios of a and b.
func AspectDifference(a, b pipeline.Dimension) float64 {
	if a.Height == 0 || b.Height == 0 {
		return 0
	}
	return math.Abs(float64(a.Width)/float64(a.Height) - float64(b.Width)/float64(b.Height))
}

// Even rounds both dimensions up to the next even number.
func Even(d pipeline.Dimension) pipeline.Dimension {
	return pipeline.Dimension{Width: d.Width + d.Width%2, Height: d.Height + d.Height%2}
}
