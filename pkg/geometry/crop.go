// Package geometry parses crop and resolution specifications and resolves
// per-frame source rectangles.
package geometry

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/user/timelapse/pkg/keyframe"
	"github.com/user/timelapse/pkg/pipeline"
)

var tokenPattern = regexp.MustCompile(`^-?\d+%?$`)

// Value is one crop field: a pixel count or a percentage of the image dimension.
type Value struct {
	Amount  int
	Percent bool
}

// maxCoord bounds every resolved coordinate. Anything beyond it is outside
// any decodable image, and keeping sums below it avoids int overflow.
const maxCoord = math.MaxInt32

// Pixels resolves the value against dim, keeping its sign. The magnitude
// saturates at maxCoord.
func (v Value) Pixels(dim int) int {
	mag := abs(v.Amount)
	if v.Percent && mag > 0 {
		if dim > 0 && mag > maxCoord*100/dim {
			mag = maxCoord
		} else {
			mag = mag * dim / 100
		}
	}
	mag = min(mag, maxCoord)
	if v.Amount < 0 {
		return -mag
	}
	return mag
}

func (v Value) String() string {
	if v.Percent {
		return fmt.Sprintf("%d%%", v.Amount)
	}
	return strconv.Itoa(v.Amount)
}

// CropSpec is a parsed width:height:x:y crop.
// Negative X or Y anchor the window to the right or bottom edge.
type CropSpec struct {
	Width  Value
	Height Value
	X      Value
	Y      Value
}

func (c CropSpec) String() string {
	return strings.Join([]string{c.Width.String(), c.Height.String(), c.X.String(), c.Y.String()}, ":")
}

// ParseCrop parses a crop specification such as "600:400:100:50" or "50%:50%:-10%:10%".
func ParseCrop(spec string) (CropSpec, error) {
	parts := strings.Split(strings.TrimSpace(spec), ":")
	if len(parts) != 4 {
		return CropSpec{}, &pipeline.ParseError{
			Input:  spec,
			Reason: fmt.Sprintf("expected width:height:x:y, got %d fields", len(parts)),
		}
	}

	var values [4]Value
	for i, p := range parts {
		v, err := parseValue(spec, strings.TrimSpace(p))
		if err != nil {
			return CropSpec{}, err
		}
		values[i] = v
	}

	crop := CropSpec{Width: values[0], Height: values[1], X: values[2], Y: values[3]}
	if crop.Width.Amount <= 0 {
		return CropSpec{}, pipeline.Configf("crop", "width must be positive, got %s", crop.Width)
	}
	if crop.Height.Amount <= 0 {
		return CropSpec{}, pipeline.Configf("crop", "height must be positive, got %s", crop.Height)
	}
	return crop, nil
}

func parseValue(spec, token string) (Value, error) {
	if !tokenPattern.MatchString(token) {
		return Value{}, &pipeline.ParseError{Input: spec, Token: token, Reason: "expected an integer or percentage"}
	}
	percent := strings.HasSuffix(token, "%")
	n, err := strconv.Atoi(strings.TrimSuffix(token, "%"))
	if err != nil {
		return Value{}, &pipeline.ParseError{Input: spec, Token: token, Reason: "number out of range"}
	}
	return Value{Amount: n, Percent: percent}, nil
}

// Base computes the crop rectangle against one image, before offsets.
func (c CropSpec) Base(img pipeline.Dimension) pipeline.Rectangle {
	w := c.Width.Pixels(img.Width)
	h := c.Height.Pixels(img.Height)
	return pipeline.Rectangle{
		X:      anchor(c.X.Pixels(img.Width), img.Width, w),
		Y:      anchor(c.Y.Pixels(img.Height), img.Height, h),
		Width:  w,
		Height: h,
	}
}

// anchor turns a negative offset into a distance from the far edge.
func anchor(offset, dim, size int) int {
	if offset >= 0 {
		return offset
	}
	return dim - abs(offset) - size
}

// Resolve computes the source rectangle of every frame. dims holds each
// frame's image size. offX and offY hold per-frame offsets and may be nil.
// Offsets require a crop. The first frame whose rectangle leaves its image
// fails the whole call with a BoundaryError indexed from zero.
func Resolve(crop *CropSpec, offX, offY keyframe.Schedule, dims []pipeline.Dimension) ([]pipeline.Rectangle, error) {
	if crop == nil && (offX != nil || offY != nil) {
		return nil, pipeline.Configf("offset", "offsets require a crop")
	}
	if offX != nil && len(offX) != len(dims) {
		return nil, pipeline.Configf("offset-x", "schedule has %d values for %d frames", len(offX), len(dims))
	}
	if offY != nil && len(offY) != len(dims) {
		return nil, pipeline.Configf("offset-y", "schedule has %d values for %d frames", len(offY), len(dims))
	}

	rects := make([]pipeline.Rectangle, len(dims))
	for i, d := range dims {
		var r pipeline.Rectangle
		if crop == nil {
			r = pipeline.Rectangle{Width: d.Width, Height: d.Height}
		} else {
			r = crop.Base(d)
			if offX != nil {
				r.X = shift(r.X, offX[i])
			}
			if offY != nil {
				r.Y = shift(r.Y, offY[i])
			}
		}
		if !r.Within(d) {
			return nil, &pipeline.BoundaryError{FrameIndex: i, Requested: r, Image: d}
		}
		rects[i] = r
	}
	return rects, nil
}

// shift adds a rounded offset to pos, saturating at ±maxCoord.
func shift(pos int, offset float64) int {
	v := float64(pos) + math.Round(offset)
	return int(math.Max(-maxCoord, math.Min(maxCoord, v)))
}

func abs(n int) int {
	switch {
	case n == math.MinInt:
		return math.MaxInt
	case n < 0:
		return -n
	default:
		return n
	}
}
