package ocr

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdflayout/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, matching Tesseract's numbering.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// Valid reports whether m is one of Tesseract's page segmentation modes.
func (m PageSegMode) Valid() bool {
	return m >= PSM_OSD_ONLY && m <= PSM_RAW_LINE
}

// PageSegmenter is implemented by recognizers whose layout analysis can be
// tuned.
type PageSegmenter interface {
	SetPageSegMode(mode PageSegMode) error
}

// Recognizer turns encoded image bytes into text.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

// Annotate sets the AltText of every image from its recognized text. Images
// that already carry alternative text are left alone.
func Annotate(r Recognizer, images []model.ImageElement) error {
	for i := range images {
		if images[i].AltText != "" {
			continue
		}
		text, err := r.RecognizeImage(images[i].Data)
		if err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		images[i].AltText = text
	}
	return nil
}
