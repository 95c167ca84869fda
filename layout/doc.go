// Package layout reconstructs lines and reading order from positioned text
// runs.
//
// # Coordinate Normalization
//
// Decoders report run positions in PDF user space. [NormalizeRuns] converts
// them to a top-down axis so that larger y values are further down the page:
//
//	runs := layout.NormalizeRuns(rawRuns, pageHeight)
//
// # Line Clustering
//
// The [LineClusterer] groups runs into lines in source order. A run joins the
// current line when its vertical distance to the line's first run is below
// the line threshold:
//
//	lines := layout.NewLineClusterer().Cluster(runs)
//
// # Document Assembly
//
// The [Assembler] merges the lines and images of all pages into a single
// sequence ordered by page and vertical position, inserting paragraph breaks
// or joining paragraphs:
//
//	config := layout.DefaultAssemblerConfig()
//	config.JoinParagraphs = true
//	elements := layout.NewAssemblerWithConfig(config).Assemble(pages)
//
// All functions in this package are pure and safe for concurrent use.
package layout
