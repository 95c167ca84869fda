package ocr

import (
	"errors"
	"testing"

	"github.com/tsawler/pdflayout/model"
)

type fakeRecognizer struct {
	calls int
	text  string
	err   error
}

func (f *fakeRecognizer) RecognizeImage(imageData []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestAnnotate(t *testing.T) {
	images := []model.ImageElement{
		{Data: []byte{1}},
		{Data: []byte{2}, AltText: "kept"},
	}
	r := &fakeRecognizer{text: "Figure 1"}

	if err := Annotate(r, images); err != nil {
		t.Fatalf("Annotate failed: %v", err)
	}
	if images[0].AltText != "Figure 1" {
		t.Errorf("images[0].AltText = %q", images[0].AltText)
	}
	if images[1].AltText != "kept" {
		t.Errorf("images[1].AltText = %q, want kept", images[1].AltText)
	}
	if r.calls != 1 {
		t.Errorf("recognizer called %d times, want 1", r.calls)
	}
}

func TestAnnotate_Error(t *testing.T) {
	boom := errors.New("boom")
	err := Annotate(&fakeRecognizer{err: boom}, []model.ImageElement{{Data: []byte{1}}})
	if !errors.Is(err, boom) {
		t.Errorf("Annotate() error = %v, want wrapped boom", err)
	}
}

func TestPageSegModeValid(t *testing.T) {
	tests := []struct {
		mode PageSegMode
		want bool
	}{
		{PSM_OSD_ONLY, true},
		{PSM_AUTO, true},
		{PSM_RAW_LINE, true},
		{-1, false},
		{14, false},
	}

	for _, tt := range tests {
		if got := tt.mode.Valid(); got != tt.want {
			t.Errorf("PageSegMode(%d).Valid() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
