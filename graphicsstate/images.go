package graphicsstate

import (
	"math"

	"github.com/tsawler/pdflayout/contentstream"
	"github.com/tsawler/pdflayout/model"
)

// ImageExtractor derives the page-space rectangles of painted images from a
// page's operator records.
//
// The extractor remembers the most recent cm operands and applies them to
// every subsequent Do. It does not concatenate matrices or honor q/Q.
type ImageExtractor struct {
	pageWidth  float64
	pageHeight float64

	lastMatrix model.Matrix
	regions    []model.ImageRegion
}

// NewImageExtractor creates an extractor for a page of the given size.
func NewImageExtractor(pageWidth, pageHeight float64) *ImageExtractor {
	return &ImageExtractor{
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
	}
}

// Extract walks the operator records and returns one region per paint-image
// record, in stream order. Each call starts from a zero matrix.
func (ie *ImageExtractor) Extract(operations []contentstream.Operation) []model.ImageRegion {
	ie.lastMatrix = model.Matrix{}
	ie.regions = make([]model.ImageRegion, 0)

	for _, op := range operations {
		ie.processOperation(op)
	}

	return ie.regions
}

// processOperation processes a single operator record
func (ie *ImageExtractor) processOperation(op contentstream.Operation) {
	switch op.Kind {
	case contentstream.OpTransform:
		ie.lastMatrix = op.Matrix()
	case contentstream.OpPaintImage:
		ie.regions = append(ie.regions, RegionFromMatrix(ie.lastMatrix, ie.pageWidth, ie.pageHeight))
	}
}

// ExtractImageRegions is a convenience wrapper around ImageExtractor.
func ExtractImageRegions(operations []contentstream.Operation, pageWidth, pageHeight float64) []model.ImageRegion {
	return NewImageExtractor(pageWidth, pageHeight).Extract(operations)
}

// RegionFromMatrix maps the unit square painted under m to a top-down page
// rectangle clamped to the page.
//
// The sign of d decides which edge f is measured from: with a positive
// height f is the distance of the image's bottom edge from the bottom of the
// page, with a negative height it is measured from the top.
func RegionFromMatrix(m model.Matrix, pageWidth, pageHeight float64) model.ImageRegion {
	width := m.ScaleX()
	height := m.ScaleY()
	heightAbs := math.Abs(height)

	x := m.TranslateX()
	y := m.TranslateY()

	var top float64
	if height < 0 {
		top = y - heightAbs
	} else {
		top = pageHeight - y - heightAbs
	}

	widthClamped := clamp(width, pageWidth-x)
	heightClamped := clamp(heightAbs, pageHeight-top)

	return model.ImageRegion{
		X:      x,
		Y:      top,
		Width:  widthClamped,
		Height: heightClamped,
	}
}

// clamp limits v to max and never returns a negative value.
func clamp(v, max float64) float64 {
	if v > max {
		v = max
	}
	if v < 0 {
		return 0
	}
	return v
}
