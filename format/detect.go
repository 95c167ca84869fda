// Package format sniffs input files so that non-PDF input is rejected before
// it reaches the decoder.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotPDF is returned when the input does not carry a PDF header.
var ErrNotPDF = errors.New("input is not a PDF document")

// Format represents a detected file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// ZIP indicates a ZIP container such as DOCX or ODT.
	ZIP
	// HTML indicates an HTML document.
	HTML
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case ZIP:
		return "ZIP"
	case HTML:
		return "HTML"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	default:
		return "Unknown"
	}
}

// headerWindow is how far into the file a PDF header may appear. Some
// producers prepend garbage before %PDF-.
const headerWindow = 1024

var (
	pdfMagic  = []byte("%PDF-")
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
)

// DetectFromMagic checks leading bytes to determine the format.
func DetectFromMagic(data []byte) Format {
	if len(data) > headerWindow {
		data = data[:headerWindow]
	}

	switch {
	case bytes.Contains(data, pdfMagic):
		return PDF
	case bytes.HasPrefix(data, zipMagic):
		return ZIP
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG
	case detectHTMLMagic(data):
		return HTML
	default:
		return Unknown
	}
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(strings.TrimSpace(string(data)))
	return strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML")
}

// DetectFromReader reads the start of r to determine the format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, headerWindow)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// CheckPDF returns ErrNotPDF, annotated with the detected format, unless r
// starts with a PDF header.
func CheckPDF(r io.ReaderAt) error {
	f, err := DetectFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if f != PDF {
		return fmt.Errorf("%w (detected %s)", ErrNotPDF, f)
	}
	return nil
}
