package layout

import "github.com/tsawler/pdflayout/model"

// NormalizeRuns converts decoder runs from PDF user space (origin at the
// bottom-left corner) to the top-down page axis used by every later stage.
// Run order is preserved.
func NormalizeRuns(runs []model.RawTextRun, pageHeight float64) []model.TextRun {
	out := make([]model.TextRun, len(runs))
	for i, r := range runs {
		out[i] = NormalizeRun(r, pageHeight)
	}
	return out
}

// NormalizeRun converts a single run. The baseline offset is the run's y
// translation.
func NormalizeRun(r model.RawTextRun, pageHeight float64) model.TextRun {
	return model.TextRun{
		Text: r.Text,
		Font: r.Font,
		X:    r.Transform.TranslateX(),
		Y:    pageHeight - r.Transform.TranslateY(),
	}
}
