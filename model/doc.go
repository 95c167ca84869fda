// Package model provides the data types shared by every stage of layout
// reconstruction.
//
// Decoders produce [RawTextRun] values and operator records. The layout
// stages turn them into [TextLine] and [ImageRegion] values which are
// collected per page in a [PageResult]. The document assembler flattens all
// pages into a slice of [Element] values whose order is the reading order.
//
// # Geometry
//
//   - [Matrix] - 2D affine transformation matrix [a b c d e f]
//   - [Rect] - axis-aligned rectangle in top-down page space
//
// # Elements
//
// [Element] is a tagged variant: text lines carry their [TextItem] values,
// images carry encoded bytes and paragraph breaks carry nothing. Elements do
// not record any position.
package model
