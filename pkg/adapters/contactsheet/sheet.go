// Package contactsheet renders a preview grid of sampled frames using the gg library.
package contactsheet

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

type thumbnail struct {
	index int
	img   image.Image
}

// Sheet wraps another OutputSink and keeps scaled copies of evenly spaced
// frames. The grid is written when the wrapped sink closes successfully.
type Sheet struct {
	next   ports.OutputSink
	path   string
	theme  pipeline.PreviewTheme
	fs     ports.FileSystem
	codec  ports.ImageCodec
	logger ports.Logger

	wanted map[int]bool
	thumbs []thumbnail
}

// New creates a contact sheet for frames [first, first+count).
func New(next ports.OutputSink, path string, first, count int, theme pipeline.PreviewTheme, fs ports.FileSystem, codec ports.ImageCodec, logger ports.Logger) *Sheet {
	wanted := make(map[int]bool)
	for _, idx := range SampleIndices(first, count, theme.MaxThumbnails) {
		wanted[idx] = true
	}
	return &Sheet{
		next:   next,
		path:   path,
		theme:  theme,
		fs:     fs,
		codec:  codec,
		logger: logger.WithComponent("preview"),
		wanted: wanted,
	}
}

// SampleIndices picks up to max evenly spaced indices from [first, first+count),
// always including the first and last frame.
func SampleIndices(first, count, max int) []int {
	if count <= 0 || max <= 0 {
		return nil
	}
	if count <= max {
		out := make([]int, count)
		for i := range out {
			out[i] = first + i
		}
		return out
	}
	if max == 1 {
		return []int{first}
	}
	out := make([]int, max)
	for j := range out {
		out[j] = first + j*(count-1)/(max-1)
	}
	return out
}

// WriteFrame forwards the frame and keeps a thumbnail when it is sampled.
func (s *Sheet) WriteFrame(index int, sourcePath string, img image.Image) error {
	if err := s.next.WriteFrame(index, sourcePath, img); err != nil {
		return err
	}
	if s.wanted[index] {
		s.thumbs = append(s.thumbs, thumbnail{index: index, img: scaleToWidth(img, s.theme.CellWidth)})
	}
	return nil
}

func scaleToWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	height := int(math.Round(float64(width) * float64(b.Dy()) / float64(b.Dx())))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Close closes the wrapped sink and then writes the sheet.
func (s *Sheet) Close() error {
	if err := s.next.Close(); err != nil {
		return err
	}
	if len(s.thumbs) == 0 {
		return nil
	}

	sheet := s.render()
	data, err := s.codec.Encode(sheet, ports.FormatPNG, 0)
	if err != nil {
		return &pipeline.EncodeError{Target: s.path, Cause: err}
	}
	if err := s.fs.WriteFile(s.path, data); err != nil {
		return &pipeline.EncodeError{Target: s.path, Cause: err}
	}
	s.logger.Debug("Wrote contact sheet with %d frames to %s", len(s.thumbs), s.path)
	return nil
}

// render lays the thumbnails out on a near-square grid.
func (s *Sheet) render() image.Image {
	t := s.theme
	n := len(s.thumbs)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols

	thumbHeight := 0
	for _, th := range s.thumbs {
		thumbHeight = max(thumbHeight, th.img.Bounds().Dy())
	}
	cellHeight := thumbHeight + t.LabelHeight

	width := cols*t.CellWidth + (cols+1)*t.Gap
	height := rows*cellHeight + (rows+1)*t.Gap

	dc := gg.NewContext(width, height)
	dc.SetColor(t.BackgroundColor)
	dc.Clear()

	for i, th := range s.thumbs {
		x := t.Gap + (i%cols)*(t.CellWidth+t.Gap)
		y := t.Gap + (i/cols)*(cellHeight+t.Gap)
		dc.DrawImage(th.img, x, y)

		dc.SetColor(t.LabelColor)
		dc.DrawStringAnchored(fmt.Sprintf("#%d", th.index), float64(x+t.CellWidth/2), float64(y+thumbHeight+t.LabelHeight/2), 0.5, 0.5)
	}
	return dc.Image()
}

// Abort aborts the wrapped sink. No sheet is written.
func (s *Sheet) Abort() error {
	s.thumbs = nil
	return s.next.Abort()
}

// Report returns the wrapped sink's report when it has one.
func (s *Sheet) Report() ports.OutputReport {
	if r, ok := s.next.(ports.OutputReporter); ok {
		return r.Report()
	}
	return ports.OutputReport{}
}

var (
	_ ports.OutputSink     = (*Sheet)(nil)
	_ ports.OutputReporter = (*Sheet)(nil)
)
