package ports

import (
	"image"
	"strings"
)

// ImageFormat specifies a still image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatTIFF
)

// ParseImageFormat maps a file extension or format name to an ImageFormat.
func ParseImageFormat(s string) (ImageFormat, bool) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "png":
		return FormatPNG, true
	case "tif", "tiff":
		return FormatTIFF, true
	default:
		return 0, false
	}
}

// Extension returns the file extension written for the format, without a dot.
func (f ImageFormat) Extension() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatTIFF:
		return "tiff"
	default:
		return "jpg"
	}
}

func (f ImageFormat) String() string {
	return f.Extension()
}

// ImageCodec abstracts reading source images and encoding processed stills.
type ImageCodec interface {
	// Decode reads and decodes the image at path.
	Decode(path string) (image.Image, error)

	// DecodeConfig reads only the image header and returns its size.
	DecodeConfig(path string) (width, height int, err error)

	// Encode encodes an image in the given format. Quality applies to JPEG only.
	Encode(img image.Image, format ImageFormat, quality int) ([]byte, error)
}
