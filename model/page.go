package model

// RawTextRun is a positioned string fragment as emitted by the document
// decoder. Transform is in PDF user space, where y grows upward from the
// bottom edge of the page.
type RawTextRun struct {
	Text      string
	Font      string
	Transform Matrix
}

// TextRun is a text run whose position has been normalized to the top-down
// page axis.
type TextRun struct {
	Text string
	Font string
	X    float64
	Y    float64 // distance from the top edge of the page to the baseline
}

// TextItem is a single run's content inside a line.
type TextItem struct {
	Text string `json:"text"`
	Font string `json:"font"`
}

// TextLine is a group of runs sharing a baseline. X and Y are taken from the
// first run of the line and never move as further runs are appended.
type TextLine struct {
	X     float64
	Y     float64
	Items []TextItem
}

// Text joins the text of all items.
func (l TextLine) Text() string {
	return joinItems(l.Items)
}

// ImageRegion is the page-space rectangle covered by a painted image, clamped
// to the page bounds.
type ImageRegion = Rect

// ImageElement is an image region together with the encoded pixels cropped
// from the rendered page.
type ImageElement struct {
	ImageRegion
	Data    []byte
	Format  string
	AltText string // recognized text, filled when OCR is enabled
}

// PageResult is the output of processing a single page.
type PageResult struct {
	Index         int // 1-indexed page number
	Width         float64
	Height        float64
	TextElements  []TextLine
	ImageElements []ImageElement
}
