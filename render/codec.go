package render

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Encoder encodes a bitmap into an output image format.
type Encoder interface {
	Encode(w io.Writer, img image.Image) error
	Format() string
}

type encoderFunc struct {
	format string
	encode func(w io.Writer, img image.Image) error
}

func (e encoderFunc) Encode(w io.Writer, img image.Image) error { return e.encode(w, img) }
func (e encoderFunc) Format() string                            { return e.format }

// EncoderFor returns the encoder for a format name. Names are case
// insensitive and may carry a leading dot.
func EncoderFor(format string) (Encoder, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")

	switch name {
	case "png":
		enc := &png.Encoder{CompressionLevel: png.DefaultCompression}
		return encoderFunc{"png", enc.Encode}, nil
	case "jpeg", "jpg":
		return encoderFunc{"jpeg", func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
		}}, nil
	case "gif":
		return encoderFunc{"gif", func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}}, nil
	case "bmp":
		return encoderFunc{"bmp", bmp.Encode}, nil
	case "tiff", "tif":
		return encoderFunc{"tiff", func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Extension returns the file extension for an encoder's format.
func Extension(enc Encoder) string {
	switch enc.Format() {
	case "jpeg":
		return ".jpg"
	case "tiff":
		return ".tif"
	default:
		return "." + enc.Format()
	}
}
