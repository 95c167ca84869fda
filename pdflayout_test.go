package pdflayout

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tsawler/pdflayout/contentstream"
	"github.com/tsawler/pdflayout/format"
	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/reader"
	"github.com/tsawler/pdflayout/render"
)

// fakeSource serves prepared pages.
type fakeSource struct {
	pages map[int]*reader.PageContent
	errs  map[int]error
	count int
}

func (s *fakeSource) PageCount() int { return s.count }

func (s *fakeSource) Page(ctx context.Context, index int) (*reader.PageContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.errs[index]; err != nil {
		return nil, err
	}
	if p, ok := s.pages[index]; ok {
		return p, nil
	}
	return &reader.PageContent{Index: index, Width: 612, Height: 792}, nil
}

// fakeRasterizer paints a solid page of the requested size.
type fakeRasterizer struct {
	calls  atomic.Int32
	width  float64
	height float64
	err    error
}

func (r *fakeRasterizer) RenderPage(ctx context.Context, pageIndex int, scale float64) (image.Image, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	w, h, err := render.CanvasSize(r.width, r.height, scale)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	return img, nil
}

func run(text string, x, y float64) model.RawTextRun {
	return model.RawTextRun{Text: text, Font: "F1", Transform: model.Matrix{12, 0, 0, 12, x, y}}
}

// textSource has two pages of text and no images.
func textSource() *fakeSource {
	return &fakeSource{
		count: 2,
		pages: map[int]*reader.PageContent{
			1: {
				Index: 1, Width: 612, Height: 800,
				Runs: []model.RawTextRun{
					run("Hello ", 72, 700),
					run("World", 110, 700.5),
					run("Next", 72, 600),
				},
			},
			2: {
				Index: 2, Width: 612, Height: 800,
				Runs: []model.RawTextRun{run("Second page", 72, 750)},
			},
		},
	}
}

// imageSource has one 200x300 page painting a 100x50 image.
func imageSource() *fakeSource {
	return &fakeSource{
		count: 1,
		pages: map[int]*reader.PageContent{
			1: {
				Index: 1, Width: 200, Height: 300,
				Runs: []model.RawTextRun{run("Caption", 10, 100)},
				Operations: []contentstream.Operation{
					contentstream.Save(),
					contentstream.Transform(100, 0, 0, -50, 10, 200),
					contentstream.PaintImage("Im1"),
					contentstream.Restore(),
				},
			},
		},
	}
}

func TestParseRaw_Text(t *testing.T) {
	pages, err := FromSource(textSource()).ExtractImages(false).ParseRaw(context.Background())
	if err != nil {
		t.Fatalf("ParseRaw failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}

	p1 := pages[0]
	if p1.Index != 1 || p1.Width != 612 || p1.Height != 800 {
		t.Errorf("page 1 = {%d %v %v}", p1.Index, p1.Width, p1.Height)
	}
	if len(p1.TextElements) != 2 {
		t.Fatalf("Expected 2 lines on page 1, got %d", len(p1.TextElements))
	}
	if got := p1.TextElements[0].Text(); got != "Hello World" {
		t.Errorf("line 1 = %q, want %q", got, "Hello World")
	}
	if p1.TextElements[0].Y != 100 || p1.TextElements[1].Y != 200 {
		t.Errorf("line y = %v, %v; want 100, 200", p1.TextElements[0].Y, p1.TextElements[1].Y)
	}
	if p1.ImageElements == nil || len(p1.ImageElements) != 0 {
		t.Errorf("ImageElements = %v, want empty slice", p1.ImageElements)
	}
	if pages[1].Index != 2 {
		t.Errorf("pages[1].Index = %d, want 2", pages[1].Index)
	}
}

func TestParse_ParagraphBreaks(t *testing.T) {
	elems, err := FromSource(textSource()).ExtractImages(false).Parse(context.Background())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []model.ElementType{
		model.ElementTypeText,
		model.ElementTypeParagraphBreak,
		model.ElementTypeText,
		model.ElementTypeParagraphBreak,
		model.ElementTypeText,
	}
	if len(elems) != len(want) {
		t.Fatalf("Expected %d elements, got %d: %v", len(want), len(elems), elems)
	}
	for i, w := range want {
		if elems[i].Type != w {
			t.Errorf("elems[%d].Type = %v, want %v", i, elems[i].Type, w)
		}
	}
}

func TestParse_JoinParagraphs(t *testing.T) {
	elems, err := FromSource(textSource()).
		ExtractImages(false).
		ParagraphThreshold(150).
		JoinParagraphs().
		Parse(context.Background())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Page 1 lines are 100pt apart and merge; page 2 is never merged.
	if len(elems) != 2 {
		t.Fatalf("Expected 2 elements, got %d: %v", len(elems), elems)
	}
	if got := elems[0].Text(); got != "Hello World Next" {
		t.Errorf("elems[0] = %q, want %q", got, "Hello World Next")
	}
}

func TestParseRaw_Images(t *testing.T) {
	raster := &fakeRasterizer{width: 200, height: 300}

	pages, err := FromSource(imageSource()).WithRasterizer(raster).ParseRaw(context.Background())
	if err != nil {
		t.Fatalf("ParseRaw failed: %v", err)
	}

	imgs := pages[0].ImageElements
	if len(imgs) != 1 {
		t.Fatalf("Expected 1 image, got %d", len(imgs))
	}
	want := model.ImageRegion{X: 10, Y: 150, Width: 100, Height: 50}
	if imgs[0].ImageRegion != want {
		t.Errorf("region = %+v, want %+v", imgs[0].ImageRegion, want)
	}
	if imgs[0].Format != "png" {
		t.Errorf("Format = %q, want png", imgs[0].Format)
	}

	decoded, err := png.Decode(bytes.NewReader(imgs[0].Data))
	if err != nil {
		t.Fatalf("image is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 200 || decoded.Bounds().Dy() != 100 {
		t.Errorf("image size = %v, want 200x100", decoded.Bounds().Size())
	}
	if raster.calls.Load() != 1 {
		t.Errorf("rasterizer called %d times, want 1", raster.calls.Load())
	}
}

func TestParse_ImageElement(t *testing.T) {
	raster := &fakeRasterizer{width: 200, height: 300}

	elems, err := FromSource(imageSource()).WithRasterizer(raster).ImageFormat("jpeg").Parse(context.Background())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// The caption at y=200 comes after the image at y=150; no gap is
	// measured after an image, so there is no break.
	if len(elems) != 2 {
		t.Fatalf("Expected 2 elements, got %d: %v", len(elems), elems)
	}
	if elems[0].Type != model.ElementTypeImage || elems[0].Format != "jpeg" || elems[0].PageIndex != 1 {
		t.Errorf("elems[0] = %+v", elems[0])
	}
	if elems[1].Text() != "Caption" {
		t.Errorf("elems[1] = %q", elems[1].Text())
	}
}

func TestParseRaw_NoRegionsSkipsRasterizer(t *testing.T) {
	raster := &fakeRasterizer{width: 612, height: 800}

	if _, err := FromSource(textSource()).WithRasterizer(raster).ParseRaw(context.Background()); err != nil {
		t.Fatalf("ParseRaw failed: %v", err)
	}
	if raster.calls.Load() != 0 {
		t.Errorf("rasterizer called %d times, want 0", raster.calls.Load())
	}
}

func TestParseRaw_ImagesDisabled(t *testing.T) {
	raster := &fakeRasterizer{width: 200, height: 300}

	pages, err := FromSource(imageSource()).WithRasterizer(raster).ExtractImages(false).ParseRaw(context.Background())
	if err != nil {
		t.Fatalf("ParseRaw failed: %v", err)
	}
	if len(pages[0].ImageElements) != 0 || raster.calls.Load() != 0 {
		t.Error("no images should be extracted when disabled")
	}
}

func TestParseRaw_NoRasterizer(t *testing.T) {
	_, err := FromSource(imageSource()).ParseRaw(context.Background())
	if !errors.Is(err, ErrNoRasterizer) {
		t.Errorf("ParseRaw() error = %v, want ErrNoRasterizer", err)
	}
}

func TestParseRaw_RasterizerError(t *testing.T) {
	boom := errors.New("render failed")
	_, err := FromSource(imageSource()).WithRasterizer(&fakeRasterizer{err: boom}).ParseRaw(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("ParseRaw() error = %v, want wrapped render error", err)
	}
}

func TestParseRaw_PageError(t *testing.T) {
	src := textSource()
	boom := errors.New("corrupt page")
	src.errs = map[int]error{2: boom}

	pages, err := FromSource(src).ExtractImages(false).ParseRaw(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("ParseRaw() error = %v, want wrapped page error", err)
	}
	if !strings.Contains(err.Error(), "page 2") {
		t.Errorf("error %q should name the page", err)
	}
	if pages != nil {
		t.Error("no partial results expected on failure")
	}
}

func TestParseRaw_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := FromSource(textSource()).ParseRaw(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ParseRaw() error = %v, want context.Canceled", err)
	}
}

func TestParseRaw_PageSelection(t *testing.T) {
	pages, err := FromSource(textSource()).ExtractImages(false).Pages(2, 2).ParseRaw(context.Background())
	if err != nil {
		t.Fatalf("ParseRaw failed: %v", err)
	}
	if len(pages) != 1 || pages[0].Index != 2 {
		t.Errorf("Expected only page 2, got %+v", pages)
	}

	if _, err := FromSource(textSource()).Pages(3).ParseRaw(context.Background()); err == nil {
		t.Error("expected error for out of range page")
	}
	if _, err := FromSource(textSource()).PageRange(2, 1).ParseRaw(context.Background()); err == nil {
		t.Error("expected error for inverted page range")
	}
}

func TestParseRaw_ConcurrencyPreservesOrder(t *testing.T) {
	src := &fakeSource{count: 20, pages: map[int]*reader.PageContent{}}
	for i := 1; i <= 20; i++ {
		src.pages[i] = &reader.PageContent{Index: i, Width: 100, Height: 100}
	}

	for _, n := range []int{0, 1, 4} {
		pages, err := FromSource(src).Concurrency(n).ParseRaw(context.Background())
		if err != nil {
			t.Fatalf("Concurrency(%d): %v", n, err)
		}
		for i, p := range pages {
			if p.Index != i+1 {
				t.Errorf("Concurrency(%d): pages[%d].Index = %d", n, i, p.Index)
			}
		}
	}
}

func TestParseRaw_Observer(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}
	done := -1

	obs := ObserverFuncs{
		Page: func(p model.PageResult) {
			mu.Lock()
			seen[p.Index] = true
			mu.Unlock()
		},
		Done: func(n int) { done = n },
	}

	pages, err := FromSource(textSource()).ExtractImages(false).WithObserver(obs).ParseRaw(context.Background())
	if err != nil {
		t.Fatalf("ParseRaw failed: %v", err)
	}
	if len(seen) != 2 || !seen[1] || !seen[2] {
		t.Errorf("observed pages = %v", seen)
	}
	if done != len(pages) {
		t.Errorf("OnDone(%d), want %d", done, len(pages))
	}
}

func TestParseRaw_ObserverNotDoneOnError(t *testing.T) {
	src := textSource()
	src.errs = map[int]error{1: errors.New("bad")}

	called := false
	obs := ObserverFuncs{Done: func(int) { called = true }}
	if _, err := FromSource(src).WithObserver(obs).ParseRaw(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if called {
		t.Error("OnDone must not be called when a page fails")
	}
}

type upperRecognizer struct{}

func (upperRecognizer) RecognizeImage(data []byte) (string, error) { return "FIGURE", nil }

func TestParseRaw_OCR(t *testing.T) {
	raster := &fakeRasterizer{width: 200, height: 300}

	pages, err := FromSource(imageSource()).
		WithRasterizer(raster).
		WithRecognizer(upperRecognizer{}).
		OCR("").
		ParseRaw(context.Background())
	if err != nil {
		t.Fatalf("ParseRaw failed: %v", err)
	}
	if got := pages[0].ImageElements[0].AltText; got != "FIGURE" {
		t.Errorf("AltText = %q, want FIGURE", got)
	}
}

func TestParseRaw_InvalidOptions(t *testing.T) {
	_, err := FromSource(textSource()).ImageScale(0).ParseRaw(context.Background())
	if !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("ParseRaw() error = %v, want ErrInvalidOptions", err)
	}

	_, err = FromSource(textSource()).ImageFormat("webp").ParseRaw(context.Background())
	if !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("ParseRaw() error = %v, want ErrInvalidOptions", err)
	}
}

func TestText(t *testing.T) {
	text, err := FromSource(textSource()).Text(context.Background())
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	want := "Hello World\n\nNext\n\nSecond page\n"
	if text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}

func TestText_JoinParagraphs(t *testing.T) {
	text, err := FromSource(textSource()).JoinParagraphs().Text(context.Background())
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	want := "Hello World\nNext\nSecond page\n"
	if text != want {
		t.Errorf("Text() = %q, want %q", text, want)
	}
}

func TestText_SkipsImages(t *testing.T) {
	// No rasterizer is configured; Text never renders pages.
	text, err := FromSource(imageSource()).Text(context.Background())
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != "Caption\n" {
		t.Errorf("Text() = %q, want %q", text, "Caption\n")
	}
}

func TestExtractorImmutability(t *testing.T) {
	base := FromSource(textSource())
	joined := base.JoinParagraphs().Pages(1)

	if base.Options().JoinParagraphs {
		t.Error("configuring a derived extractor must not change the base")
	}
	if len(base.pages) != 0 {
		t.Error("page selection leaked into the base extractor")
	}
	if !joined.Options().JoinParagraphs || len(joined.pages) != 1 {
		t.Error("derived extractor lost its configuration")
	}
}

func TestNoSource(t *testing.T) {
	if _, err := (&Extractor{options: DefaultOptions()}).Parse(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Errorf("Parse() error = %v, want ErrNoSource", err)
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open("nonexistent.pdf").Parse(context.Background()); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestFromBytes_NotPDF(t *testing.T) {
	_, err := FromBytes([]byte("PK\x03\x04")).PageCount()
	if !errors.Is(err, format.ErrNotPDF) {
		t.Errorf("PageCount() error = %v, want ErrNotPDF", err)
	}
}

func TestMust(t *testing.T) {
	if got := Must(FromSource(textSource()).PageCount()); got != 2 {
		t.Errorf("Must(PageCount()) = %d, want 2", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(Open("nonexistent.pdf").PageCount())
}
