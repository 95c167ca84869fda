package reader

import (
	"math"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdflayout/model"
)

const (
	// baselineTolerance is the largest baseline difference, in points, for
	// two glyphs to share a run.
	baselineTolerance = 0.01

	// adjacencyRatio is the largest horizontal gap between two glyphs of a
	// run, as a fraction of the font size.
	adjacencyRatio = 0.25
)

// coalesceGlyphs merges consecutive glyph records into text runs.
func coalesceGlyphs(glyphs []pdf.Text) []model.RawTextRun {
	var runs []model.RawTextRun

	var (
		cur     []byte
		first   pdf.Text
		lastEnd float64
		open    bool
	)

	flush := func() {
		if !open {
			return
		}
		runs = append(runs, model.RawTextRun{
			Text:      norm.NFC.String(string(cur)),
			Font:      first.Font,
			Transform: model.Matrix{first.FontSize, 0, 0, first.FontSize, first.X, first.Y},
		})
		cur = cur[:0]
		open = false
	}

	for _, g := range glyphs {
		if open && continuesRun(first, lastEnd, g) {
			cur = append(cur, g.S...)
			lastEnd = g.X + g.W
			continue
		}

		flush()
		first = g
		cur = append(cur, g.S...)
		lastEnd = g.X + g.W
		open = true
	}
	flush()

	return runs
}

// continuesRun reports whether glyph g extends the run started by first whose
// last glyph ended at lastEnd.
func continuesRun(first pdf.Text, lastEnd float64, g pdf.Text) bool {
	if g.Font != first.Font || g.FontSize != first.FontSize {
		return false
	}
	if math.Abs(g.Y-first.Y) > baselineTolerance {
		return false
	}

	tolerance := math.Max(first.FontSize*adjacencyRatio, 1)
	gap := g.X - lastEnd
	return gap >= -tolerance && gap <= tolerance
}
