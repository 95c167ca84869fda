// Package graphicsstate tracks the transformation state of a page's operator
// records to locate painted images.
//
// The [ImageExtractor] keeps the operands of the last cm record and turns
// every image paint into a rectangle in top-down page space:
//
//	regions := graphicsstate.ExtractImageRegions(ops, pageWidth, pageHeight)
//
// The matrix [a b c d e f] of an image maps the unit square to the page, so
// a is the image width, d its height and (e, f) the position of one corner.
// When d is positive, f is measured from the bottom of the page to the
// image's bottom edge; when d is negative the y axis has been flipped and f
// is measured from the top. Rectangles are clamped so they never extend past
// the right or bottom edge of the page.
package graphicsstate
