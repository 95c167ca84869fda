package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pdflayout/model"
)

// AssemblerConfig holds configuration for document assembly
type AssemblerConfig struct {
	// ParagraphThreshold is the vertical gap above which two consecutive
	// lines belong to separate paragraphs (default: 25)
	ParagraphThreshold float64

	// JoinParagraphs merges the lines of each paragraph into one text
	// element and omits paragraph break markers (default: false)
	JoinParagraphs bool

	// IncludeImages emits image elements (default: true)
	IncludeImages bool
}

// DefaultAssemblerConfig returns the default assembly configuration
func DefaultAssemblerConfig() AssemblerConfig {
	return AssemblerConfig{
		ParagraphThreshold: 25,
		JoinParagraphs:     false,
		IncludeImages:      true,
	}
}

// Assembler merges page results into a single reading-order sequence.
// It holds no state between calls.
type Assembler struct {
	config AssemblerConfig
}

// NewAssembler creates an assembler with default configuration
func NewAssembler() *Assembler {
	return &Assembler{config: DefaultAssemblerConfig()}
}

// NewAssemblerWithConfig creates an assembler with custom configuration
func NewAssemblerWithConfig(config AssemblerConfig) *Assembler {
	return &Assembler{config: config}
}

// Config returns the assembler's configuration
func (a *Assembler) Config() AssemblerConfig {
	return a.config
}

// positioned is an element that still carries the anchor used for ordering
type positioned struct {
	elem model.Element
	y    float64
}

// Assemble flattens, orders and joins the elements of all pages.
//
// Elements are stable-sorted by (page index, y); within a page, text lines
// come before images at the same y. A paragraph break is placed before an
// element whose distance to the preceding text line exceeds the threshold.
// When joining, a line within the threshold of the preceding line is
// appended to the previous text element with a single space separating the
// two. Elements following an image, and the first element of a page, are
// never merged.
//
// The input is not modified.
func (a *Assembler) Assemble(pages []model.PageResult) []model.Element {
	sorted := a.flatten(pages)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].elem.PageIndex != sorted[j].elem.PageIndex {
			return sorted[i].elem.PageIndex < sorted[j].elem.PageIndex
		}
		return sorted[i].y < sorted[j].y
	})

	return a.join(sorted)
}

// flatten collects text lines and, when enabled, images of every page.
func (a *Assembler) flatten(pages []model.PageResult) []positioned {
	var out []positioned
	for _, page := range pages {
		for _, line := range page.TextElements {
			items := append([]model.TextItem(nil), line.Items...)
			out = append(out, positioned{
				elem: model.NewTextElement(page.Index, items),
				y:    line.Y,
			})
		}

		if !a.config.IncludeImages {
			continue
		}
		for _, img := range page.ImageElements {
			out = append(out, positioned{
				elem: model.NewImageElement(page.Index, img),
				y:    img.Y,
			})
		}
	}
	return out
}

// join scans the sorted elements and applies paragraph breaks or joining.
func (a *Assembler) join(sorted []positioned) []model.Element {
	out := make([]model.Element, 0, len(sorted))

	for i, cur := range sorted {
		var prev *positioned
		if i > 0 {
			prev = &sorted[i-1]
		}

		// The gap is only defined when the previous element is a text line.
		gapKnown := prev != nil && prev.elem.IsText()
		var deltaY float64
		if gapKnown {
			deltaY = math.Abs(cur.y - prev.y)
		}

		if gapKnown && deltaY > a.config.ParagraphThreshold {
			if !a.config.JoinParagraphs {
				out = append(out, model.ParagraphBreak())
			}
			out = append(out, cur.elem)
			continue
		}

		samePage := gapKnown && prev.elem.PageIndex == cur.elem.PageIndex
		if a.config.JoinParagraphs && samePage && cur.elem.IsText() && len(out) > 0 && out[len(out)-1].IsText() {
			mergeInto(&out[len(out)-1], cur.elem)
			continue
		}

		out = append(out, cur.elem)
	}

	return out
}

// mergeInto appends src's items to dst, adding a space to dst's last item so
// the last word of one line does not run into the first word of the next.
func mergeInto(dst *model.Element, src model.Element) {
	if n := len(dst.Items); n > 0 {
		dst.Items[n-1].Text += " "
	}
	dst.Items = append(dst.Items, src.Items...)
}

// AssembleText is a convenience function that assembles pages with the given
// threshold and join mode and returns the plain text, one element per line
// and an empty line for each paragraph break.
func AssembleText(pages []model.PageResult, paragraphThreshold float64, joinParagraphs bool) string {
	config := DefaultAssemblerConfig()
	config.ParagraphThreshold = paragraphThreshold
	config.JoinParagraphs = joinParagraphs
	config.IncludeImages = false

	elems := NewAssemblerWithConfig(config).Assemble(pages)

	var text []byte
	for _, e := range elems {
		if e.IsText() {
			text = append(text, e.Text()...)
		}
		text = append(text, '\n')
	}
	return string(text)
}
