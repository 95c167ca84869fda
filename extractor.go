package pdflayout

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/pdflayout/export"
	"github.com/tsawler/pdflayout/layout"
	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/mupdf"
	"github.com/tsawler/pdflayout/ocr"
	"github.com/tsawler/pdflayout/reader"
	"github.com/tsawler/pdflayout/render"
)

// Source supplies decoded pages. Page indexes are 1-based.
type Source interface {
	PageCount() int
	Page(ctx context.Context, index int) (*reader.PageContent, error)
}

var _ Source = (*reader.Document)(nil)

// Extractor provides a fluent interface for reconstructing the layout of a
// PDF. Each configuration method returns a new Extractor instance, so a
// configured value can be shared and extended by chaining. Terminal
// operations open and close the input on the receiver itself; run at most
// one terminal operation at a time on a given Extractor.
type Extractor struct {
	// Input (only one is set)
	filename string
	data     []byte
	source   Source

	// Collaborators
	rasterizer render.Rasterizer
	recognizer ocr.Recognizer
	observer   Observer
	logger     *zap.Logger

	// Lifecycle
	doc      *reader.Document // document opened by the extractor
	tempPath string           // spooled copy of data for MuPDF

	// Configuration
	options Options
	pages   []int // 1-indexed; nil means all pages

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of the page
// selection.
func (e *Extractor) clone() *Extractor {
	newExt := *e
	if e.pages != nil {
		newExt.pages = append([]int(nil), e.pages...)
	}
	return &newExt
}

// log returns the configured logger or a no-op logger.
func (e *Extractor) log() *zap.Logger {
	if e.logger == nil {
		return zap.NewNop()
	}
	return e.logger
}

// ensureSource opens the input if it is not open yet.
func (e *Extractor) ensureSource() (Source, error) {
	if e.source != nil {
		return e.source, nil
	}
	if e.doc != nil {
		return e.doc, nil
	}

	switch {
	case e.filename != "":
		doc, err := reader.Open(e.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		e.doc = doc
	case e.data != nil:
		doc, err := reader.FromBytes(e.data)
		if err != nil {
			return nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		e.doc = doc
	default:
		return nil, ErrNoSource
	}

	return e.doc, nil
}

// ensureRasterizer returns the rasterizer for the input. For in-memory data a
// temporary file is written so that MuPDF can read it.
func (e *Extractor) ensureRasterizer() (render.Rasterizer, error) {
	if e.rasterizer != nil {
		return e.rasterizer, nil
	}

	path := e.filename
	if path == "" && e.data != nil {
		if e.tempPath == "" {
			f, err := os.CreateTemp("", "pdflayout-*.pdf")
			if err != nil {
				return nil, fmt.Errorf("failed to spool PDF: %w", err)
			}
			_, werr := f.Write(e.data)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(f.Name())
				return nil, fmt.Errorf("failed to spool PDF: %v", firstErr(werr, cerr))
			}
			e.tempPath = f.Name()
		}
		path = e.tempPath
	}
	if path == "" {
		return nil, ErrNoRasterizer
	}

	e.rasterizer = mupdf.New(path, mupdf.WithLogger(e.log()))
	return e.rasterizer, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times. A Source supplied with FromSource
// is not closed.
func (e *Extractor) Close() error {
	var err error
	if e.doc != nil {
		err = e.doc.Close()
		e.doc = nil
	}
	if e.tempPath != "" {
		if rerr := os.Remove(e.tempPath); rerr != nil && err == nil {
			err = rerr
		}
		e.tempPath = ""
		e.rasterizer = nil
	}
	return err
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	elems, err := pdflayout.Open("doc.pdf").Pages(1, 3, 5).Parse(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.pages = append(newExt.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	elems, err := pdflayout.Open("doc.pdf").PageRange(5, 10).Parse(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return newExt
	}
	for i := start; i <= end; i++ {
		newExt.pages = append(newExt.pages, i)
	}
	return newExt
}

// WithOptions replaces all options.
func (e *Extractor) WithOptions(opts Options) *Extractor {
	newExt := e.clone()
	newExt.options = opts
	return newExt
}

// Options returns the current options.
func (e *Extractor) Options() Options {
	return e.options
}

// ParagraphThreshold sets the gap above which a paragraph break is emitted.
func (e *Extractor) ParagraphThreshold(points float64) *Extractor {
	newExt := e.clone()
	newExt.options.ParagraphThreshold = points
	return newExt
}

// LineThreshold sets the vertical tolerance for grouping runs into lines.
func (e *Extractor) LineThreshold(points float64) *Extractor {
	newExt := e.clone()
	newExt.options.LineThreshold = points
	return newExt
}

// ImageScale sets the rasterization scale used to crop images.
func (e *Extractor) ImageScale(scale float64) *Extractor {
	newExt := e.clone()
	newExt.options.ImageScale = scale
	return newExt
}

// ExtractImages enables or disables image extraction.
func (e *Extractor) ExtractImages(enabled bool) *Extractor {
	newExt := e.clone()
	newExt.options.ExtractImages = enabled
	return newExt
}

// IgnoreEmptyText controls whether whitespace-only runs are dropped.
func (e *Extractor) IgnoreEmptyText(enabled bool) *Extractor {
	newExt := e.clone()
	newExt.options.IgnoreEmptyText = enabled
	return newExt
}

// JoinParagraphs configures the extractor to merge the lines of each
// paragraph into a single text element. Paragraph break markers are omitted.
//
// Example:
//
//	elems, err := pdflayout.Open("doc.pdf").JoinParagraphs().Parse(ctx)
func (e *Extractor) JoinParagraphs() *Extractor {
	newExt := e.clone()
	newExt.options.JoinParagraphs = true
	return newExt
}

// ImageFormat sets the encoding of extracted images ("png", "jpeg", "gif",
// "bmp" or "tiff").
func (e *Extractor) ImageFormat(format string) *Extractor {
	newExt := e.clone()
	newExt.options.ImageOutputFormat = format
	return newExt
}

// Concurrency bounds the number of pages processed at once. Zero means no
// limit.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.Concurrency = n
	return newExt
}

// OCR enables recognition of the text inside extracted images, stored as the
// image's alternative text. lang is a Tesseract language such as "eng".
// Requires a build with the "ocr" tag unless WithRecognizer is used.
func (e *Extractor) OCR(lang string) *Extractor {
	newExt := e.clone()
	newExt.options.OCRImages = true
	if lang != "" {
		newExt.options.OCRLanguage = lang
	}
	return newExt
}

// OCRPageSegMode sets the Tesseract page segmentation mode used when OCR is
// enabled.
func (e *Extractor) OCRPageSegMode(mode ocr.PageSegMode) *Extractor {
	newExt := e.clone()
	newExt.options.OCRPageSegMode = int(mode)
	return newExt
}

// WithRasterizer sets the rasterizer used to render pages that contain
// images.
func (e *Extractor) WithRasterizer(r render.Rasterizer) *Extractor {
	newExt := e.clone()
	newExt.rasterizer = r
	return newExt
}

// WithRecognizer sets the OCR engine used when OCR is enabled.
func (e *Extractor) WithRecognizer(r ocr.Recognizer) *Extractor {
	newExt := e.clone()
	newExt.recognizer = r
	return newExt
}

// WithObserver sets an observer notified of page completion.
func (e *Extractor) WithObserver(o Observer) *Extractor {
	newExt := e.clone()
	newExt.observer = o
	return newExt
}

// WithLogger sets the logger. The default discards all output.
func (e *Extractor) WithLogger(logger *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// PageCount returns the number of pages in the document.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	src, err := e.ensureSource()
	if err != nil {
		return 0, err
	}
	defer e.Close()

	return src.PageCount(), nil
}

// ParseRaw processes the selected pages and returns one result per page in
// page order. Pages are processed concurrently; the first failing page fails
// the whole call.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) ParseRaw(ctx context.Context) ([]model.PageResult, error) {
	if e.err != nil {
		return nil, e.err
	}
	if err := e.options.Validate(); err != nil {
		return nil, err
	}

	src, err := e.ensureSource()
	if err != nil {
		return nil, err
	}
	defer e.Close()

	return e.parseRaw(ctx, src)
}

// Parse processes the selected pages and assembles them into a single
// element sequence in reading order.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	elems, err := pdflayout.Open("document.pdf").Parse(ctx)
func (e *Extractor) Parse(ctx context.Context) ([]model.Element, error) {
	pages, err := e.ParseRaw(ctx)
	if err != nil {
		return nil, err
	}
	return e.assembler().Assemble(pages), nil
}

// Text returns the assembled text, one line per text element and an empty
// line for each paragraph break. Images are not extracted.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Text(ctx context.Context) (string, error) {
	pages, err := e.ExtractImages(false).ParseRaw(ctx)
	if err != nil {
		return "", err
	}
	return layout.AssembleText(pages, e.options.ParagraphThreshold, e.options.JoinParagraphs), nil
}

// Export parses the document and renders it with the given export
// configuration.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	md, err := pdflayout.Open("document.pdf").
//	    Export(ctx, export.Config{Format: export.FormatMarkdown})
func (e *Extractor) Export(ctx context.Context, config export.Config) (string, error) {
	elems, err := e.Parse(ctx)
	if err != nil {
		return "", err
	}
	return export.NewExporterWithConfig(config).ExportToString(elems)
}

// ExportTo parses the document and writes it to w.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) ExportTo(ctx context.Context, w io.Writer, config export.Config) error {
	elems, err := e.Parse(ctx)
	if err != nil {
		return err
	}
	return export.NewExporterWithConfig(config).Export(elems, w)
}

// ============================================================================
// Internal helpers
// ============================================================================

func (e *Extractor) assembler() *layout.Assembler {
	return layout.NewAssemblerWithConfig(layout.AssemblerConfig{
		ParagraphThreshold: e.options.ParagraphThreshold,
		JoinParagraphs:     e.options.JoinParagraphs,
		IncludeImages:      e.options.ExtractImages,
	})
}

// resolvePages validates the selected 1-indexed pages and returns them sorted
// and deduplicated. If no pages were selected, returns all pages.
func (e *Extractor) resolvePages(pageCount int) ([]int, error) {
	if len(e.pages) == 0 {
		indices := make([]int, pageCount)
		for i := range indices {
			indices[i] = i + 1
		}
		return indices, nil
	}

	seen := make(map[int]bool)
	var indices []int
	for _, p := range e.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			indices = append(indices, p)
		}
	}

	sort.Ints(indices)
	return indices, nil
}
