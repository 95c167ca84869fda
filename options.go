package pdflayout

import (
	"fmt"
	"runtime"

	"github.com/go-viper/mapstructure/v2"

	"github.com/tsawler/pdflayout/ocr"
	"github.com/tsawler/pdflayout/render"
)

// Options holds configuration for layout reconstruction. A fresh value is
// built for each invocation with DefaultOptions.
//
// The mapstructure tags are the option names accepted by OptionsFromMap and
// by configuration files.
type Options struct {
	// ParagraphThreshold is the vertical gap, in points, above which two
	// consecutive lines belong to separate paragraphs (default: 25)
	ParagraphThreshold float64 `mapstructure:"paragraphThreshold"`

	// LineThreshold is the largest vertical distance, in points, between a
	// run and the first run of a line for the run to join that line
	// (default: 1)
	LineThreshold float64 `mapstructure:"lineThreshold"`

	// ImageScale is the rasterization scale used to crop images (default: 2)
	ImageScale float64 `mapstructure:"imageScale"`

	// ExtractImages enables image extraction (default: true)
	ExtractImages bool `mapstructure:"extractImages"`

	// IgnoreEmptyText drops whitespace-only runs (default: true)
	IgnoreEmptyText bool `mapstructure:"ignoreEmptyText"`

	// JoinParagraphs merges the lines of a paragraph into one element and
	// omits paragraph break markers (default: false)
	JoinParagraphs bool `mapstructure:"joinParagraphs"`

	// ImageOutputFormat is the encoding of extracted images (default: "png")
	ImageOutputFormat string `mapstructure:"imageOutputFormat"`

	// Concurrency bounds the number of pages processed at once
	// (default: runtime.NumCPU())
	Concurrency int `mapstructure:"concurrency"`

	// OCRImages fills the alternative text of images by OCR (default: false)
	OCRImages bool `mapstructure:"ocrImages"`

	// OCRLanguage is the Tesseract language used for OCR (default: "eng")
	OCRLanguage string `mapstructure:"ocrLanguage"`

	// OCRPageSegMode is the Tesseract page segmentation mode, 0 to 13
	// (default: 3, fully automatic)
	OCRPageSegMode int `mapstructure:"ocrPageSegMode"`
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		ParagraphThreshold: 25,
		LineThreshold:      1,
		ImageScale:         2,
		ExtractImages:      true,
		IgnoreEmptyText:    true,
		JoinParagraphs:     false,
		ImageOutputFormat:  "png",
		Concurrency:        runtime.NumCPU(),
		OCRImages:          false,
		OCRLanguage:        "eng",
		OCRPageSegMode:     int(ocr.PSM_AUTO),
	}
}

// OptionsFromMap overlays the recognized keys of m onto the defaults.
// Unknown keys are ignored; a value of the wrong type is an error.
func OptionsFromMap(m map[string]any) (Options, error) {
	opts := DefaultOptions()
	if err := mapstructure.Decode(m, &opts); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return opts, nil
}

// Validate checks the options. All errors wrap ErrInvalidOptions.
func (o Options) Validate() error {
	if !(o.ImageScale > 0) {
		return fmt.Errorf("%w: imageScale must be positive, got %g", ErrInvalidOptions, o.ImageScale)
	}
	if o.LineThreshold < 0 {
		return fmt.Errorf("%w: lineThreshold must not be negative, got %g", ErrInvalidOptions, o.LineThreshold)
	}
	if o.ParagraphThreshold < 0 {
		return fmt.Errorf("%w: paragraphThreshold must not be negative, got %g", ErrInvalidOptions, o.ParagraphThreshold)
	}
	if o.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative, got %d", ErrInvalidOptions, o.Concurrency)
	}
	if o.OCRImages && !ocr.PageSegMode(o.OCRPageSegMode).Valid() {
		return fmt.Errorf("%w: ocrPageSegMode must be between 0 and 13, got %d", ErrInvalidOptions, o.OCRPageSegMode)
	}
	if o.ExtractImages {
		if _, err := render.EncoderFor(o.ImageOutputFormat); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	return nil
}
