package export

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/render"
)

// ImageSink stores the index-th image of a document and returns the
// reference the exported document should use for it.
type ImageSink func(index int, elem model.Element) (string, error)

// DirSink writes images into dir as image-001.png, image-002.png and so on,
// and references them by file name relative to dir.
func DirSink(dir string) ImageSink {
	return func(index int, elem model.Element) (string, error) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		name := ImageFileName(index, elem.Format)
		if err := os.WriteFile(filepath.Join(dir, name), elem.Image, 0o644); err != nil {
			return "", err
		}
		return name, nil
	}
}

// ImageFileName returns the file name used for the index-th (0-based) image.
func ImageFileName(index int, format string) string {
	ext := "." + strings.ToLower(format)
	if enc, err := render.EncoderFor(format); err == nil {
		ext = render.Extension(enc)
	}
	return fmt.Sprintf("image-%03d%s", index+1, ext)
}

var mediaTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
}

// DataURI encodes data as a base64 data URI of the given image format.
func DataURI(format string, data []byte) string {
	mt, ok := mediaTypes[strings.ToLower(format)]
	if !ok {
		mt = "application/octet-stream"
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(data)
}
