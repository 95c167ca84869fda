package render

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/tsawler/pdflayout/model"
)

// Cropper cuts image regions out of a page bitmap rendered at Scale.
type Cropper struct {
	scale   float64
	encoder Encoder
}

// NewCropper creates a cropper for bitmaps rendered at scale.
func NewCropper(scale float64, encoder Encoder) *Cropper {
	return &Cropper{scale: scale, encoder: encoder}
}

// Scale returns the cropper's scale.
func (c *Cropper) Scale() float64 {
	return c.scale
}

// PixelRect converts a page-space region to the pixel rectangle of a bitmap
// rendered at scale. Every field is scaled and rounded independently.
func PixelRect(region model.ImageRegion, scale float64) image.Rectangle {
	x, y, w, h := region.Scale(scale).Round()
	return image.Rectangle{
		Min: image.Pt(x, y),
		Max: image.Pt(x+w, y+h),
	}
}

// Crop encodes one image per region, in region order. Degenerate regions are
// passed to the encoder like any other; an encoder error aborts the page.
//
// The pixel rectangle of a region is intersected with the bitmap bounds, so a
// region that extends past an edge (a negative x from a matrix with e < 0, or
// a rounding overshoot at the right or bottom) yields a smaller image rather
// than an error. A region entirely outside the bitmap becomes empty.
func (c *Cropper) Crop(bitmap image.Image, regions []model.ImageRegion) ([]model.ImageElement, error) {
	images := make([]model.ImageElement, 0, len(regions))

	for i, region := range regions {
		data, err := c.CropRegion(bitmap, region)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		images = append(images, model.ImageElement{
			ImageRegion: region,
			Data:        data,
			Format:      c.encoder.Format(),
		})
	}

	return images, nil
}

// CropRegion crops a single region, clipped to the bitmap, and returns the
// encoded bytes.
func (c *Cropper) CropRegion(bitmap image.Image, region model.ImageRegion) ([]byte, error) {
	r := PixelRect(region, c.scale).Intersect(bitmap.Bounds())

	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), bitmap, r.Min, draw.Src)

	var buf bytes.Buffer
	if err := c.encoder.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.encoder.Format(), err)
	}
	return buf.Bytes(), nil
}
