package reader

import (
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdflayout/model"
)

func glyph(s string, x, y, w float64) pdf.Text {
	return pdf.Text{Font: "Helvetica", FontSize: 12, X: x, Y: y, W: w, S: s}
}

func TestCoalesceGlyphs(t *testing.T) {
	glyphs := []pdf.Text{
		glyph("H", 72, 700, 8),
		glyph("i", 80, 700, 3),
		// Gap wider than a quarter of the font size.
		glyph("x", 120, 700, 6),
		// New baseline.
		glyph("y", 126, 680, 6),
	}

	runs := coalesceGlyphs(glyphs)
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d: %+v", len(runs), runs)
	}

	if runs[0].Text != "Hi" {
		t.Errorf("runs[0].Text = %q, want Hi", runs[0].Text)
	}
	want := model.Matrix{12, 0, 0, 12, 72, 700}
	if runs[0].Transform != want {
		t.Errorf("runs[0].Transform = %v, want %v", runs[0].Transform, want)
	}
	if runs[0].Font != "Helvetica" {
		t.Errorf("runs[0].Font = %q", runs[0].Font)
	}
	if runs[1].Text != "x" || runs[2].Text != "y" {
		t.Errorf("unexpected runs %q %q", runs[1].Text, runs[2].Text)
	}
}

func TestCoalesceGlyphs_FontChange(t *testing.T) {
	a := glyph("a", 0, 0, 5)
	b := glyph("b", 5, 0, 5)
	b.Font = "Times-Bold"

	if runs := coalesceGlyphs([]pdf.Text{a, b}); len(runs) != 2 {
		t.Errorf("Expected font change to split runs, got %d", len(runs))
	}
}

func TestCoalesceGlyphs_NFC(t *testing.T) {
	runs := coalesceGlyphs([]pdf.Text{glyph("e", 0, 0, 5), glyph("\u0301", 5, 0, 0)})
	if len(runs) != 1 || runs[0].Text != "\u00e9" {
		t.Errorf("Expected composed e-acute, got %+v", runs)
	}
}

func TestCoalesceGlyphs_Empty(t *testing.T) {
	if runs := coalesceGlyphs(nil); len(runs) != 0 {
		t.Errorf("Expected no runs, got %d", len(runs))
	}
}
