package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ErrInvalidGeometry is returned when a page or canvas has a non-positive
// width or height. It signals a broken precondition, not a recoverable state.
var ErrInvalidGeometry = errors.New("invalid canvas size")

// Rasterizer paints a full page to a bitmap.
//
// Implementations must return a bitmap of CanvasSize(width, height, scale)
// pixels where width and height are the page's dimensions in points.
type Rasterizer interface {
	RenderPage(ctx context.Context, pageIndex int, scale float64) (image.Image, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(ctx context.Context, pageIndex int, scale float64) (image.Image, error)

// RenderPage calls f.
func (f RasterizerFunc) RenderPage(ctx context.Context, pageIndex int, scale float64) (image.Image, error) {
	return f(ctx, pageIndex, scale)
}

// CanvasSize returns the pixel size of a page of width x height points
// rendered at scale.
func CanvasSize(width, height, scale float64) (int, int, error) {
	w := math.Ceil(width * scale)
	h := math.Ceil(height * scale)
	if !(w > 0 && h > 0) {
		return 0, 0, fmt.Errorf("%w: %gx%g at scale %g", ErrInvalidGeometry, width, height, scale)
	}
	return int(w), int(h), nil
}

// FitCanvas returns img with exactly width x height pixels anchored at the
// origin. Pixels outside img are white; pixels beyond the canvas are dropped.
// img is returned unchanged when it already has the requested size.
func FitCanvas(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Min == (image.Point{}) && b.Dx() == width && b.Dy() == height {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
