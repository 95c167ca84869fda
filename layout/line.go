package layout

import (
	"math"
	"strings"

	"github.com/tsawler/pdflayout/model"
)

// zeroWidthSpace is stripped from every run before it is considered.
const zeroWidthSpace = "\u200B"

// LineConfig holds configuration for line clustering
type LineConfig struct {
	// Threshold is the vertical distance below which a run joins the current
	// line. PDFs often place runs of one line at slightly different baselines,
	// so this leaves a little room for floating point noise (default: 1)
	Threshold float64

	// IgnoreEmptyText drops runs whose text is only whitespace (default: true)
	IgnoreEmptyText bool
}

// DefaultLineConfig returns the default line configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		Threshold:       1.0,
		IgnoreEmptyText: true,
	}
}

// LineClusterer groups a page's text runs into lines
type LineClusterer struct {
	config LineConfig
}

// NewLineClusterer creates a clusterer with default configuration
func NewLineClusterer() *LineClusterer {
	return &LineClusterer{
		config: DefaultLineConfig(),
	}
}

// NewLineClustererWithConfig creates a clusterer with custom configuration
func NewLineClustererWithConfig(config LineConfig) *LineClusterer {
	return &LineClusterer{
		config: config,
	}
}

// Config returns the clusterer's configuration
func (c *LineClusterer) Config() LineConfig {
	return c.config
}

// Cluster groups runs into lines in source order.
//
// A run joins the most recently started line when its distance to the line's
// anchor is strictly less than the threshold. The anchor is the position of
// the line's first run and never moves, so a slowly drifting baseline will
// eventually start a new line. Lines are not sorted.
func (c *LineClusterer) Cluster(runs []model.TextRun) []model.TextLine {
	lines := make([]model.TextLine, 0)

	for _, run := range runs {
		text := StripZeroWidth(run.Text)
		if c.config.IgnoreEmptyText && IsEmptyText(text) {
			continue
		}

		item := model.TextItem{Text: text, Font: run.Font}

		if n := len(lines); n > 0 {
			last := &lines[n-1]
			if math.Abs(run.Y-last.Y) < c.config.Threshold {
				last.Items = append(last.Items, item)
				continue
			}
		}

		lines = append(lines, model.TextLine{
			X:     run.X,
			Y:     run.Y,
			Items: []model.TextItem{item},
		})
	}

	return lines
}

// StripZeroWidth removes zero-width spaces from s
func StripZeroWidth(s string) string {
	if !strings.Contains(s, zeroWidthSpace) {
		return s
	}
	return strings.ReplaceAll(s, zeroWidthSpace, "")
}

// IsEmptyText reports whether s contains nothing but whitespace and
// zero-width spaces
func IsEmptyText(s string) bool {
	return strings.TrimSpace(StripZeroWidth(s)) == ""
}
