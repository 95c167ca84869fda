package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/pdflayout/contentstream"
	"github.com/tsawler/pdflayout/format"
	"github.com/tsawler/pdflayout/model"
)

// buildPDF assembles a PDF from object bodies, numbering them from 1 and
// computing the xref offsets.
func buildPDF(objects ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func streamObject(dict, data string) string {
	return fmt.Sprintf("<< %s /Length %d >>\nstream\n%s\nendstream", dict, len(data), data)
}

// samplePDF has one page inheriting its MediaBox from the page tree. The
// content shows a line of text, paints an image directly and paints it again
// through a form XObject.
func samplePDF() []byte {
	content := "BT /F1 12 Tf 72 700 Td (Hello) Tj ET\nq 100 0 0 50 10 200 cm /Im1 Do Q\n/Fm1 Do"
	return buildPDF(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 612 792] >>",
		"<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 4 0 R >> /XObject << /Im1 5 0 R /Fm1 6 0 R >> >> /Contents 7 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		streamObject("/Type /XObject /Subtype /Image /Width 1 /Height 1 /ColorSpace /DeviceGray /BitsPerComponent 8", "A"),
		streamObject("/Type /XObject /Subtype /Form /BBox [0 0 10 10]", "q 10 0 0 10 0 0 cm /Im1 Do Q"),
		streamObject("", content),
	)
}

func TestFromBytes_PageCount(t *testing.T) {
	doc, err := FromBytes(samplePDF())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	defer doc.Close()

	if got := doc.PageCount(); got != 1 {
		t.Errorf("PageCount() = %d, want 1", got)
	}
	if doc.Path() != "" {
		t.Errorf("Path() = %q, want empty", doc.Path())
	}
}

func TestPage_InheritedMediaBox(t *testing.T) {
	doc, err := FromBytes(samplePDF())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	page, err := doc.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if page.Index != 1 || page.Width != 612 || page.Height != 792 {
		t.Errorf("page = {%d %v %v}, want {1 612 792}", page.Index, page.Width, page.Height)
	}
}

func TestPage_Operations(t *testing.T) {
	doc, err := FromBytes(samplePDF())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	page, err := doc.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	ops := page.Operations
	if got := contentstream.CountKind(ops, contentstream.OpPaintImage); got != 2 {
		t.Errorf("paint records = %d, want 2", got)
	}
	if got := contentstream.CountKind(ops, contentstream.OpTransform); got != 2 {
		t.Errorf("transform records = %d, want 2", got)
	}
	// Two explicit q/Q pairs plus the pair wrapping the form.
	if got := contentstream.CountKind(ops, contentstream.OpSave); got != 3 {
		t.Errorf("save records = %d, want 3", got)
	}
	if got := contentstream.CountKind(ops, contentstream.OpRestore); got != 3 {
		t.Errorf("restore records = %d, want 3", got)
	}

	for _, op := range ops {
		if op.Kind == contentstream.OpTransform {
			want := model.Matrix{100, 0, 0, 50, 10, 200}
			if op.Matrix() != want {
				t.Errorf("first transform = %v, want %v", op.Matrix(), want)
			}
			break
		}
	}
}

func TestPage_Text(t *testing.T) {
	doc, err := FromBytes(samplePDF())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	page, err := doc.Page(context.Background(), 1)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	var sb strings.Builder
	for _, r := range page.Runs {
		sb.WriteString(r.Text)
	}
	if !strings.Contains(sb.String(), "Hello") {
		t.Errorf("runs text = %q, want it to contain Hello", sb.String())
	}
}

func TestPage_OutOfRange(t *testing.T) {
	doc, err := FromBytes(samplePDF())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	for _, index := range []int{0, 2, -1} {
		if _, err := doc.Page(context.Background(), index); err == nil {
			t.Errorf("Page(%d) should fail", index)
		}
	}
}

func TestPage_CanceledContext(t *testing.T) {
	doc, err := FromBytes(samplePDF())
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := doc.Page(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Page() error = %v, want context.Canceled", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.pdf")
	if err := os.WriteFile(path, samplePDF(), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer doc.Close()

	if doc.Path() != path {
		t.Errorf("Path() = %q, want %q", doc.Path(), path)
	}
	if doc.Size() <= 0 {
		t.Errorf("Size() = %d", doc.Size())
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFromBytes_NotPDF(t *testing.T) {
	_, err := FromBytes([]byte("<html><body>hi</body></html>"))
	if !errors.Is(err, format.ErrNotPDF) {
		t.Errorf("FromBytes() error = %v, want ErrNotPDF", err)
	}
}

func TestFromBytes_Corrupt(t *testing.T) {
	if _, err := FromBytes([]byte("%PDF-1.4\ngarbage")); err == nil {
		t.Error("expected error for corrupt PDF")
	}
}
