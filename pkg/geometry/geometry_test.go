package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/user/timelapse/pkg/keyframe"
	"github.com/user/timelapse/pkg/pipeline"
)

func mustCrop(t *testing.T, s string) *CropSpec {
	t.Helper()
	c, err := ParseCrop(s)
	if err != nil {
		t.Fatalf("ParseCrop(%q): %v", s, err)
	}
	return &c
}

func TestParseCrop_Pixels(t *testing.T) {
	c := mustCrop(t, "600:400:100:50")
	got := c.Base(pipeline.Dimension{Width: 2000, Height: 1500})
	want := pipeline.Rectangle{X: 100, Y: 50, Width: 600, Height: 400}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestParseCrop_Percentages(t *testing.T) {
	c := mustCrop(t, "50%:50%:10%:10%")
	got := c.Base(pipeline.Dimension{Width: 2000, Height: 1000})
	want := pipeline.Rectangle{X: 200, Y: 100, Width: 1000, Height: 500}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestParseCrop_NegativeAnchorsToFarEdge(t *testing.T) {
	c := mustCrop(t, "600:400:-100:-100")
	got := c.Base(pipeline.Dimension{Width: 2000, Height: 1500})
	if got.X != 1300 || got.Y != 1000 {
		t.Errorf("expected origin (1300,1000), got (%d,%d)", got.X, got.Y)
	}

	c = mustCrop(t, "50%:50%:-10%:0")
	got = c.Base(pipeline.Dimension{Width: 1000, Height: 800})
	if got.X != 400 || got.Y != 0 {
		t.Errorf("expected origin (400,0), got (%d,%d)", got.X, got.Y)
	}
}

func TestParseCrop_Malformed(t *testing.T) {
	for _, s := range []string{"", "600:400:100", "600:400:100:50:1", "a:400:0:0", "600px:400:0:0", "1.5:400:0:0", "600:%:0:0"} {
		_, err := ParseCrop(s)
		var pe *pipeline.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%q: expected ParseError, got %v", s, err)
		}
	}
}

func TestParseCrop_NonPositiveSize(t *testing.T) {
	for _, s := range []string{"0:400:0:0", "600:-400:0:0", "0%:10%:0:0"} {
		_, err := ParseCrop(s)
		var ce *pipeline.ConfigurationError
		if !errors.As(err, &ce) {
			t.Errorf("%q: expected ConfigurationError, got %v", s, err)
		}
	}
}

func TestCropSpec_String(t *testing.T) {
	c := mustCrop(t, "50%:400:-10%:0")
	if got := c.String(); got != "50%:400:-10%:0" {
		t.Errorf("unexpected string %q", got)
	}
}

func TestResolve_NoCropIsFullFrame(t *testing.T) {
	dims := []pipeline.Dimension{{Width: 640, Height: 480}, {Width: 800, Height: 600}}
	rects, err := Resolve(nil, nil, nil, dims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range rects {
		if r.X != 0 || r.Y != 0 || r.Size() != dims[i] {
			t.Errorf("frame %d: expected full frame, got %+v", i, r)
		}
	}
}

func TestResolve_OffsetsWithoutCrop(t *testing.T) {
	dims := []pipeline.Dimension{{Width: 640, Height: 480}}
	_, err := Resolve(nil, keyframe.Schedule{10}, nil, dims)
	var ce *pipeline.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestResolve_AppliesRoundedOffsets(t *testing.T) {
	crop := mustCrop(t, "100:100:0:0")
	dims := []pipeline.Dimension{{Width: 400, Height: 400}, {Width: 400, Height: 400}, {Width: 400, Height: 400}}
	offX := keyframe.Schedule{0, 49.5, 100}
	offY := keyframe.Schedule{0, 10.4, 20}

	rects, err := Resolve(crop, offX, offY, dims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantX := []int{0, 50, 100}
	wantY := []int{0, 10, 20}
	for i, r := range rects {
		if r.X != wantX[i] || r.Y != wantY[i] {
			t.Errorf("frame %d: expected (%d,%d), got (%d,%d)", i, wantX[i], wantY[i], r.X, r.Y)
		}
	}
}

func TestResolve_BoundaryErrorNamesFirstFrame(t *testing.T) {
	crop := mustCrop(t, "600:400:1000:0")
	dims := make([]pipeline.Dimension, 5)
	for i := range dims {
		dims[i] = pipeline.Dimension{Width: 2000, Height: 1000}
	}
	offX, err := keyframe.Build([]float64{0, 800}, 5, keyframe.OffsetX)
	if err != nil {
		t.Fatal(err)
	}

	// x = 1000, 1200, 1400, 1600, 1800 with width 600: frame 3 is the first to exceed 2000.
	_, err = Resolve(crop, offX, nil, dims)
	var be *pipeline.BoundaryError
	if !errors.As(err, &be) {
		t.Fatalf("expected BoundaryError, got %v", err)
	}
	if be.FrameIndex != 3 {
		t.Errorf("expected frame 3, got %d", be.FrameIndex)
	}
	if be.Requested.X != 1600 || be.Image.Width != 2000 {
		t.Errorf("unexpected error detail: %+v", be)
	}
}

func TestResolve_HugeValuesAreBoundaryErrors(t *testing.T) {
	dims := []pipeline.Dimension{{Width: 2000, Height: 1500}}
	for _, s := range []string{
		"600:400:9223372036854775807:0",
		"9223372036854775807:400:1:0",
		"600:9223372036854775807%:0:0",
		"600:400:-9223372036854775808:0",
		"600:400:0:-9223372036854775808%",
	} {
		_, err := Resolve(mustCrop(t, s), nil, nil, dims)
		var be *pipeline.BoundaryError
		if !errors.As(err, &be) {
			t.Errorf("%q: expected BoundaryError, got %v", s, err)
		}
	}
}

func TestResolve_HugeOffsetIsBoundaryError(t *testing.T) {
	dims := []pipeline.Dimension{{Width: 2000, Height: 1500}}
	crop := mustCrop(t, "600:400:100:0")
	for _, off := range []float64{math.MaxInt64, -math.MaxInt64, 1e300} {
		_, err := Resolve(crop, keyframe.Schedule{off}, nil, dims)
		var be *pipeline.BoundaryError
		if !errors.As(err, &be) {
			t.Errorf("offset %g: expected BoundaryError, got %v", off, err)
		}
	}
}

func TestRectangle_WithinLargeValues(t *testing.T) {
	d := pipeline.Dimension{Width: 2000, Height: 1500}
	cases := []struct {
		r    pipeline.Rectangle
		want bool
	}{
		{pipeline.Rectangle{X: 1400, Y: 1100, Width: 600, Height: 400}, true},
		{pipeline.Rectangle{X: 1401, Y: 0, Width: 600, Height: 400}, false},
		{pipeline.Rectangle{X: math.MaxInt, Y: 0, Width: 600, Height: 400}, false},
		{pipeline.Rectangle{X: 1, Y: 0, Width: math.MaxInt, Height: 400}, false},
		{pipeline.Rectangle{X: 0, Y: math.MaxInt - 10, Width: 600, Height: 400}, false},
	}
	for _, c := range cases {
		if got := c.r.Within(d); got != c.want {
			t.Errorf("%v within %v: expected %v, got %v", c.r, d, c.want, got)
		}
	}
}

func TestResolve_ScheduleLengthMismatch(t *testing.T) {
	crop := mustCrop(t, "10:10:0:0")
	dims := []pipeline.Dimension{{Width: 100, Height: 100}, {Width: 100, Height: 100}}
	if _, err := Resolve(crop, keyframe.Schedule{0}, nil, dims); err == nil {
		t.Error("expected error for short schedule")
	}
}

func TestParseResolution(t *testing.T) {
	cases := map[string]pipeline.Dimension{
		"4k":        {Width: 3840, Height: 2160},
		"HD":        {Width: 1920, Height: 1080},
		"1080p":     {Width: 1920, Height: 1080},
		"720p":      {Width: 1280, Height: 720},
		"1024x768":  {Width: 1024, Height: 768},
		" 640X360 ": {Width: 640, Height: 360},
	}
	for in, want := range cases {
		got, err := ParseResolution(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: expected %v, got %v", in, want, got)
		}
	}

	for _, bad := range []string{"", "big", "1024", "x768", "1024xabc"} {
		var pe *pipeline.ParseError
		if _, err := ParseResolution(bad); !errors.As(err, &pe) {
			t.Errorf("%q: expected ParseError, got %v", bad, err)
		}
	}
	var ce *pipeline.ConfigurationError
	if _, err := ParseResolution("0x720"); !errors.As(err, &ce) {
		t.Errorf("expected ConfigurationError for zero width, got %v", err)
	}
}

func TestFitResolution(t *testing.T) {
	cases := []struct {
		src, target, want pipeline.Dimension
	}{
		{pipeline.Dimension{Width: 4000, Height: 3000}, pipeline.Dimension{Width: 1920, Height: 1080}, pipeline.Dimension{Width: 1440, Height: 1080}},
		{pipeline.Dimension{Width: 3840, Height: 2160}, pipeline.Dimension{Width: 1280, Height: 720}, pipeline.Dimension{Width: 1280, Height: 720}},
		{pipeline.Dimension{Width: 3000, Height: 1000}, pipeline.Dimension{Width: 1920, Height: 1080}, pipeline.Dimension{Width: 1920, Height: 640}},
		{pipeline.Dimension{Width: 1001, Height: 1000}, pipeline.Dimension{Width: 1001, Height: 1001}, pipeline.Dimension{Width: 1002, Height: 1000}},
	}
	for _, c := range cases {
		got := FitResolution(c.src, c.target)
		if got != c.want {
			t.Errorf("fit %v into %v: expected %v, got %v", c.src, c.target, c.want, got)
		}
		if got.Width%2 != 0 || got.Height%2 != 0 {
			t.Errorf("fit %v into %v: odd result %v", c.src, c.target, got)
		}
	}
}

func TestAspectDifference(t *testing.T) {
	d := AspectDifference(pipeline.Dimension{Width: 4000, Height: 3000}, pipeline.Dimension{Width: 1920, Height: 1080})
	if d <= AspectTolerance {
		t.Errorf("4:3 against 16:9 should exceed tolerance, got %v", d)
	}
	d = AspectDifference(pipeline.Dimension{Width: 3840, Height: 2160}, pipeline.Dimension{Width: 1920, Height: 1080})
	if d != 0 {
		t.Errorf("equal aspects should differ by 0, got %v", d)
	}
}
