package model

import "math"

// Matrix represents a 2D affine transformation matrix laid out as
// [a b c d e f]: a and d scale, b and c skew, e and f translate.
type Matrix [6]float64

// ScaleX returns the horizontal scale component (a).
func (m Matrix) ScaleX() float64 { return m[0] }

// ScaleY returns the vertical scale component (d). A negative value means the
// y axis is flipped.
func (m Matrix) ScaleY() float64 { return m[3] }

// TranslateX returns the horizontal translation (e).
func (m Matrix) TranslateX() float64 { return m[4] }

// TranslateY returns the vertical translation (f).
func (m Matrix) TranslateY() float64 { return m[5] }

// MatrixFromSlice builds a Matrix from the first six values of vals. Missing
// values are left at zero.
func MatrixFromSlice(vals []float64) Matrix {
	var m Matrix
	copy(m[:], vals)
	return m
}

// Rect is an axis-aligned rectangle in top-down page space: X grows to the
// right and Y grows downward from the top edge of the page.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Scale multiplies every field by s.
func (r Rect) Scale(s float64) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, Width: r.Width * s, Height: r.Height * s}
}

// Round rounds every field to the nearest integer, halves away from zero.
func (r Rect) Round() (x, y, width, height int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.Width)), int(math.Round(r.Height))
}
