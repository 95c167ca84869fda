package reader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdflayout/contentstream"
	"github.com/tsawler/pdflayout/format"
	"github.com/tsawler/pdflayout/model"
)

// PageContent is the decoded content of a single page.
type PageContent struct {
	// Index is the 1-based page number.
	Index int

	// Width and Height are the MediaBox upper-right corner in points.
	Width  float64
	Height float64

	// Runs are the text runs in content stream order.
	Runs []model.RawTextRun

	// Operations are the operator records in content stream order.
	Operations []contentstream.Operation
}

// Document represents an opened PDF document
type Document struct {
	mu     sync.Mutex
	pdf    *pdf.Reader
	closer io.Closer
	path   string
	size   int64
}

// NewDocument creates a document reading from r, which holds size bytes.
func NewDocument(r io.ReaderAt, size int64) (*Document, error) {
	if err := format.CheckPDF(r); err != nil {
		return nil, err
	}

	pr, err := newPDFReader(r, size)
	if err != nil {
		return nil, err
	}

	return &Document{pdf: pr, size: size}, nil
}

// newPDFReader wraps pdf.NewReader, which panics on some malformed input.
func newPDFReader(r io.ReaderAt, size int64) (pr *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to parse PDF: %v", rec)
		}
	}()

	pr, err = pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return pr, nil
}

// FromBytes creates a document from PDF data held in memory.
func FromBytes(data []byte) (*Document, error) {
	return NewDocument(bytes.NewReader(data), int64(len(data)))
}

// Open opens a PDF file and returns a Document
func Open(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	doc, err := NewDocument(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	doc.closer = file
	doc.path = filename

	return doc, nil
}

// Close releases the underlying file, if the document owns one.
func (d *Document) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// Path returns the file path the document was opened from, or "" when it was
// created from a reader.
func (d *Document) Path() string {
	return d.path
}

// Size returns the size of the PDF data in bytes.
func (d *Document) Size() int64 {
	return d.size
}

// PageCount returns the number of pages in the PDF
func (d *Document) PageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pdf.NumPage()
}

// Page decodes the page at the given 1-based index.
func (d *Document) Page(ctx context.Context, index int) (*PageContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 1 || index > d.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", index, d.pdf.NumPage())
	}

	page := d.pdf.Page(index)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d not found", index)
	}

	return decodePage(index, page)
}

// decodePage extracts size, text runs and operators from a page. Decoder
// panics are returned as errors.
func decodePage(index int, page pdf.Page) (pc *PageContent, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pc = nil
			err = fmt.Errorf("failed to decode page %d: %v", index, rec)
		}
	}()

	width, height, err := mediaBox(page.V)
	if err != nil {
		return nil, err
	}

	pc = &PageContent{
		Index:  index,
		Width:  width,
		Height: height,
	}

	pc.Runs = coalesceGlyphs(page.Content().Text)
	pc.Operations = interpretContents(page.V.Key("Contents"), page.Resources())

	return pc, nil
}

// mediaBox returns the upper-right corner of the page's MediaBox, looking it
// up through the Parent chain when the page does not carry one.
func mediaBox(page pdf.Value) (float64, float64, error) {
	for v, depth := page, 0; !v.IsNull() && depth < maxParentDepth; v, depth = v.Key("Parent"), depth+1 {
		box := v.Key("MediaBox")
		if box.Kind() != pdf.Array {
			continue
		}
		if box.Len() < 4 {
			return 0, 0, fmt.Errorf("invalid MediaBox: %d entries", box.Len())
		}
		return box.Index(2).Float64(), box.Index(3).Float64(), nil
	}
	return 0, 0, fmt.Errorf("page has no MediaBox")
}

// maxParentDepth bounds the walk up the page tree.
const maxParentDepth = 32
