// Package reader decodes PDF files into the per-page input of the layout
// pipeline.
//
// It sits on top of github.com/ledongthuc/pdf and exposes each page as a
// [PageContent]: the page size taken from the (possibly inherited) MediaBox,
// the positioned text runs and the operator records of the page's content
// streams.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	doc, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
// Or use [NewDocument] with any io.ReaderAt, or [FromBytes] for data held in
// memory. Input that does not start with a PDF header is rejected with
// format.ErrNotPDF before it reaches the decoder.
//
// # Page Access
//
// Pages are addressed by 1-based index:
//
//	page, err := doc.Page(ctx, 1)
//
// A [Document] is safe for concurrent use; page decoding is serialized
// internally.
//
// # Text Runs
//
// The decoder reports one record per glyph. Consecutive glyphs sharing a font,
// size and baseline that touch horizontally are coalesced into a single
// [model.RawTextRun] whose transform is [size 0 0 size x y] in PDF user space.
// Text is normalized to Unicode NFC.
//
// # Operators
//
// Only the operators needed for image placement are classified: cm becomes a
// transform record, Do naming an image XObject becomes a paint record, and q
// and Q are kept. Form XObjects are expanded in place, wrapped in q/Q.
// Everything else is recorded as [contentstream.OpOther].
package reader
