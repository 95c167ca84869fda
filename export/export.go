// Package export renders an assembled element sequence as Markdown, HTML,
// JSON or plain text.
//
// Paragraphs are delimited by paragraph break markers; consecutive text
// elements without a marker between them belong to the same paragraph.
// Images are written through an [ImageSink] when one is configured and are
// otherwise embedded as data URIs.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/pdflayout/model"
)

// Format defines the available export formats
type Format int

const (
	// FormatMarkdown exports as CommonMark
	FormatMarkdown Format = iota
	// FormatHTML exports as a standalone HTML document
	FormatHTML
	// FormatJSON exports as a JSON array of elements
	FormatJSON
	// FormatText exports plain text, one line per text element
	FormatText
)

// String returns a human-readable representation of the export format
func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// FileExtension returns the typical file extension for this format
func (f Format) FileExtension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ParseFormat parses a format name such as "md", "markdown", "html", "json"
// or "text".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return 0, fmt.Errorf("unsupported export format: %q", s)
	}
}

// Config holds configuration options for export
type Config struct {
	// Format specifies the export format
	Format Format

	// Images receives image data; nil embeds images as data URIs
	Images ImageSink

	// Title is used as the HTML document title
	Title string

	// PrettyPrint enables indentation for JSON
	PrettyPrint bool
}

// DefaultConfig returns the default export configuration
func DefaultConfig() Config {
	return Config{
		Format:      FormatMarkdown,
		PrettyPrint: true,
	}
}

// Exporter writes elements in the configured format
type Exporter struct {
	config Config
}

// NewExporter creates a new exporter with default configuration
func NewExporter() *Exporter {
	return &Exporter{config: DefaultConfig()}
}

// NewExporterWithConfig creates an exporter with custom configuration
func NewExporterWithConfig(config Config) *Exporter {
	return &Exporter{config: config}
}

// Export writes elements to w
func (e *Exporter) Export(elems []model.Element, w io.Writer) error {
	switch e.config.Format {
	case FormatMarkdown:
		return e.exportMarkdown(elems, w)
	case FormatHTML:
		return e.exportHTML(elems, w)
	case FormatJSON:
		return e.exportJSON(elems, w)
	case FormatText:
		return e.exportText(elems, w)
	default:
		return fmt.Errorf("unsupported export format: %v", e.config.Format)
	}
}

// ExportToFile exports elements to a file
func (e *Exporter) ExportToFile(elems []model.Element, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}

	if err := e.Export(elems, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportToString exports elements to a string
func (e *Exporter) ExportToString(elems []model.Element) (string, error) {
	var buf bytes.Buffer
	if err := e.Export(elems, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// imageSource returns the reference under which the image-th image is
// published.
func (e *Exporter) imageSource(index int, elem model.Element) (string, error) {
	if e.config.Images == nil {
		return DataURI(elem.Format, elem.Image), nil
	}
	src, err := e.config.Images(index, elem)
	if err != nil {
		return "", fmt.Errorf("image %d: %w", index, err)
	}
	return src, nil
}

// paragraphs splits elements at paragraph breaks and images. Each group is
// either a run of text elements or a single image.
func paragraphs(elems []model.Element) [][]model.Element {
	var groups [][]model.Element
	var cur []model.Element

	flush := func() {
		if len(cur) > 0 {
			groups = append(groups, cur)
			cur = nil
		}
	}

	for _, el := range elems {
		switch el.Type {
		case model.ElementTypeText:
			cur = append(cur, el)
		case model.ElementTypeImage:
			flush()
			groups = append(groups, []model.Element{el})
		default:
			flush()
		}
	}
	flush()

	return groups
}
