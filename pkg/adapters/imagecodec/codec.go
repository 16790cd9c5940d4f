// Package imagecodec decodes source images and encodes processed stills.
//
// Decoding recognizes JPEG, PNG, TIFF, BMP and WebP by content. Encoding
// supports JPEG, PNG and TIFF.
package imagecodec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
)

// DefaultJPEGQuality is used when Encode receives a quality outside 1-100.
const DefaultJPEGQuality = 95

// Codec implements ports.ImageCodec on top of the image package decoders.
type Codec struct {
	fs ports.FileSystem
}

// New creates a new Codec reading through fs.
func New(fs ports.FileSystem) *Codec {
	return &Codec{fs: fs}
}

// Decode reads and decodes the image at path.
func (c *Codec) Decode(path string) (image.Image, error) {
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, &pipeline.DecodeError{Path: path, Cause: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &pipeline.DecodeError{Path: path, Cause: err}
	}
	return img, nil
}

// DecodeConfig reads only as much of the file as needed to learn its size.
func (c *Codec) DecodeConfig(path string) (int, int, error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return 0, 0, &pipeline.DecodeError{Path: path, Cause: err}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, &pipeline.DecodeError{Path: path, Cause: err}
	}
	return cfg.Width, cfg.Height, nil
}

// Encode encodes img in the given format. quality applies to JPEG only.
func (c *Codec) Encode(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = DefaultJPEGQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, &pipeline.EncodeError{Target: "jpeg", Cause: err}
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, &pipeline.EncodeError{Target: "png", Cause: err}
		}
	case ports.FormatTIFF:
		opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
		if err := tiff.Encode(&buf, img, opts); err != nil {
			return nil, &pipeline.EncodeError{Target: "tiff", Cause: err}
		}
	default:
		return nil, &pipeline.EncodeError{Target: format.String(), Cause: fmt.Errorf("unsupported format: %d", format)}
	}

	return buf.Bytes(), nil
}

var _ ports.ImageCodec = (*Codec)(nil)
