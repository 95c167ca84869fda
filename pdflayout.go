// Package pdflayout reconstructs the reading order of PDF documents.
//
// Each page is decoded into positioned text runs and image placements. Runs
// are clustered into lines, images are cropped from a rasterized copy of the
// page, and the pages are then merged into one sequence of text, image and
// paragraph break elements.
//
// Basic usage:
//
//	elems, err := pdflayout.Open("document.pdf").Parse(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, el := range elems {
//	    fmt.Println(el)
//	}
//
// With options:
//
//	elems, err := pdflayout.Open("report.pdf").
//	    PageRange(1, 3).
//	    JoinParagraphs().
//	    ImageFormat("jpeg").
//	    Parse(ctx)
//
// ParseRaw returns the per-page results without assembly. For lower-level
// access, the reader, layout and render packages are also available.
package pdflayout

// Open returns an Extractor reading the PDF file at filename. Images are
// rasterized with MuPDF.
//
// Example:
//
//	elems, err := pdflayout.Open("document.pdf").Parse(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  DefaultOptions(),
	}
}

// FromBytes returns an Extractor reading PDF data held in memory. When images
// need to be rasterized with MuPDF, the data is spooled to a temporary file.
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: DefaultOptions(),
	}
}

// FromSource returns an Extractor reading pages from src. The caller owns
// src. Unless a rasterizer is supplied with WithRasterizer, pages that
// contain images fail with ErrNoRasterizer; disable image extraction to avoid
// this.
//
// Example:
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	elems, err := pdflayout.FromSource(doc).ExtractImages(false).Parse(ctx)
func FromSource(src Source) *Extractor {
	return &Extractor{
		source:  src,
		options: DefaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pdflayout.Must(pdflayout.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
