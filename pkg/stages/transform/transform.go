// Package transform implements the per-frame crop and tonal adjustment stage.
package transform

import (
	"context"
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// Stage decodes one source image, crops it and applies its adjustments.
// It holds no per-frame state and is safe for concurrent use.
type Stage struct {
	codec  ports.ImageCodec
	logger ports.Logger
}

// NewStage creates a new transform stage.
func NewStage(codec ports.ImageCodec, logger ports.Logger) *Stage {
	return &Stage{
		codec:  codec,
		logger: logger.WithComponent("transform"),
	}
}

// Execute processes a single frame job.
func (s *Stage) Execute(ctx context.Context, job pipeline.FrameJob) (pipeline.FrameResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.FrameResult{}, err
	}

	img, err := s.codec.Decode(job.SourcePath)
	if err != nil {
		var de *pipeline.DecodeError
		if !errors.As(err, &de) {
			err = &pipeline.DecodeError{Path: job.SourcePath, Cause: err}
		}
		return pipeline.FrameResult{}, err
	}

	// The plan was built from image headers; the decoded size is authoritative.
	b := img.Bounds()
	actual := pipeline.Dimension{Width: b.Dx(), Height: b.Dy()}
	if !job.Rect.Within(actual) {
		return pipeline.FrameResult{}, &pipeline.BoundaryError{FrameIndex: job.Index, Requested: job.Rect, Image: actual}
	}

	s.logger.Debug("Frame %d: crop %s, exposure %.3f, brightness %.2f, contrast %.3f, saturation %.3f",
		job.Index, job.Rect, job.Adjustments.Exposure, job.Adjustments.Brightness,
		job.Adjustments.Contrast, job.Adjustments.Saturation)

	return pipeline.FrameResult{
		Index:      job.Index,
		SourcePath: job.SourcePath,
		Image:      Apply(img, job.Rect, job.Adjustments),
	}, nil
}

// Apply crops src to rect (relative to the image origin) and applies adj.
// The result always has its origin at (0,0). Alpha is carried through unchanged.
//
// Adjustments run in a fixed order on normalized channel values: exposure
// multiplies by 2^ev, brightness adds b/100, contrast scales around 0.5 and
// saturation mixes each channel with the Rec.601 luma. Values are clamped to
// [0,1] after brightness, after contrast and after saturation.
func Apply(src image.Image, rect pipeline.Rectangle, adj pipeline.Adjustments) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, rect.Width, rect.Height))
	draw.Draw(dst, dst.Bounds(), src, rect.Bounds(src.Bounds().Min).Min, draw.Src)

	if adj.IsIdentity() {
		return dst
	}

	curve := toneCurve(adj)
	sat := adj.Saturation
	pix := dst.Pix
	for y := 0; y < rect.Height; y++ {
		row := pix[y*dst.Stride : y*dst.Stride+rect.Width*4]
		for i := 0; i < len(row); i += 4 {
			r, g, b := curve[row[i]], curve[row[i+1]], curve[row[i+2]]
			if sat != 1 {
				l := 0.299*r + 0.587*g + 0.114*b
				r = clamp01(l + (r-l)*sat)
				g = clamp01(l + (g-l)*sat)
				b = clamp01(l + (b-l)*sat)
			}
			row[i] = to8(r)
			row[i+1] = to8(g)
			row[i+2] = to8(b)
		}
	}
	return dst
}

// toneCurve precomputes exposure, brightness and contrast for every 8-bit input.
func toneCurve(adj pipeline.Adjustments) *[256]float64 {
	var curve [256]float64
	gain := math.Exp2(adj.Exposure)
	offset := adj.Brightness / 100
	for v := range curve {
		f := float64(v) / 255 * gain
		f = clamp01(f + offset)
		f = clamp01((f-0.5)*adj.Contrast + 0.5)
		curve[v] = f
	}
	return &curve
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(v * 255))
}

var _ pipeline.Stage[pipeline.FrameJob, pipeline.FrameResult] = (*Stage)(nil)
