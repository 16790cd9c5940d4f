// Package keyframe expands short keyframe arrays into one value per output frame.
//
// With K keyframes and N frames, keyframe k lands on frame k*(N-1)/(K-1), so the
// first and last frames always carry the first and last keyframe values exactly.
package keyframe

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/user/timelapse/pkg/pipeline"
)

// Mode selects how values between keyframes are produced.
type Mode int

const (
	// ModeLinear interpolates linearly between neighbouring keyframes.
	ModeLinear Mode = iota
	// ModeBezier treats the keyframes as control points of one Bezier curve.
	// Only the first and last keyframes are hit exactly.
	ModeBezier
)

// ParseMode parses an interpolation mode name. The empty string means linear.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return ModeLinear, nil
	case "bezier":
		return ModeBezier, nil
	default:
		return ModeLinear, pipeline.Configf("interpolation", "unknown mode %q (want linear or bezier)", s)
	}
}

func (m Mode) String() string {
	if m == ModeBezier {
		return "bezier"
	}
	return "linear"
}

// Domain is the range of values a parameter accepts.
type Domain struct {
	Name         string
	Min          float64
	Max          float64
	ExclusiveMin bool
}

// Parameter domains.
var (
	Exposure   = Domain{Name: "exposure", Min: -3, Max: 3}
	Brightness = Domain{Name: "brightness", Min: -100, Max: 100}
	Contrast   = Domain{Name: "contrast", Min: 0, Max: 3, ExclusiveMin: true}
	Saturation = Domain{Name: "saturation", Min: 0, Max: 2}
	OffsetX    = Domain{Name: "offset-x", Min: math.Inf(-1), Max: math.Inf(1)}
	OffsetY    = Domain{Name: "offset-y", Min: math.Inf(-1), Max: math.Inf(1)}
)

// Contains reports whether v is inside the domain. NaN is never inside.
func (d Domain) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if d.ExclusiveMin {
		if v <= d.Min {
			return false
		}
	} else if v < d.Min {
		return false
	}
	return v <= d.Max
}

func (d Domain) describe() string {
	lo := "["
	if d.ExclusiveMin {
		lo = "("
	}
	return fmt.Sprintf("%s%g, %g]", lo, d.Min, d.Max)
}

// Schedule holds one value per output frame. It must not be modified after Build.
type Schedule []float64

// Slice returns the part of the schedule for frames [from, from+n).
func (s Schedule) Slice(from, n int) Schedule {
	return s[from : from+n]
}

// Build expands values into a linear schedule of n frames, validating each
// keyframe against d.
func Build(values []float64, n int, d Domain) (Schedule, error) {
	return BuildMode(values, n, d, ModeLinear)
}

// BuildMode is Build with an explicit interpolation mode.
func BuildMode(values []float64, n int, d Domain, mode Mode) (Schedule, error) {
	if len(values) == 0 {
		return nil, pipeline.Configf(d.Name, "at least one keyframe is required")
	}
	if n < 1 {
		return nil, pipeline.Configf(d.Name, "frame count must be positive, got %d", n)
	}
	for i, v := range values {
		if !d.Contains(v) {
			return nil, pipeline.Configf(d.Name, "keyframe %d (%g) is outside %s", i, v, d.describe())
		}
	}

	out := make(Schedule, n)
	k := len(values)
	switch {
	case k == 1:
		for i := range out {
			out[i] = values[0]
		}
	case n == 1:
		out[0] = values[0]
	case mode == ModeBezier:
		for i := range out {
			out[i] = bezier(values, float64(i)/float64(n-1))
		}
	default:
		for i := range out {
			out[i] = linearAt(values, i, n)
		}
	}
	return out, nil
}

// linearAt returns the value at frame i of n for k >= 2 keyframes.
func linearAt(values []float64, i, n int) float64 {
	k := len(values)
	t := float64(i*(k-1)) / float64(n-1)
	lo := int(math.Floor(t))
	hi := lo + 1
	if hi > k-1 {
		hi = k - 1
	}
	return lerp(values[lo], values[hi], t-float64(lo))
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}

// bezier evaluates the Bernstein form of the curve with the given control points.
func bezier(points []float64, t float64) float64 {
	n := len(points) - 1
	var sum float64
	for i, p := range points {
		sum += binomial(n, i) * p * math.Pow(1-t, float64(n-i)) * math.Pow(t, float64(i))
	}
	return sum
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	r := 1.0
	for i := 0; i < k; i++ {
		r = r * float64(n-i) / float64(i+1)
	}
	return r
}

// ParseList parses a comma-separated list such as "0,1.5,-0.5".
func ParseList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &pipeline.ParseError{Input: s, Reason: "empty keyframe list"}
	}
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &pipeline.ParseError{Input: s, Token: p, Reason: "not a number"}
		}
		values = append(values, v)
	}
	return values, nil
}

// FormatList is the inverse of ParseList, used when echoing settings.
func FormatList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
