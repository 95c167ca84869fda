package reader

import (
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdflayout/contentstream"
	"github.com/tsawler/pdflayout/model"
)

func nums(vals ...float64) []operand {
	out := make([]operand, len(vals))
	for i, v := range vals {
		out[i] = operand{num: v, isNum: true}
	}
	return out
}

func kinds(m map[string]xobjectKind) func(string) xobjectKind {
	return func(name string) xobjectKind { return m[name] }
}

func TestToOperation(t *testing.T) {
	lookup := kinds(map[string]xobjectKind{"Im1": xobjectImage, "Fm1": xobjectForm})

	tests := []struct {
		name string
		op   string
		args []operand
		want contentstream.OpKind
	}{
		{"cm", "cm", nums(1, 0, 0, 1, 5, 5), contentstream.OpTransform},
		{"cm short", "cm", nums(1, 0, 0, 1), contentstream.OpOther},
		{"cm name operand", "cm", append(nums(1, 0, 0, 1, 5), operand{name: "x"}), contentstream.OpOther},
		{"image Do", "Do", []operand{{name: "Im1"}}, contentstream.OpPaintImage},
		{"form Do", "Do", []operand{{name: "Fm1"}}, contentstream.OpOther},
		{"unknown Do", "Do", []operand{{name: "Nope"}}, contentstream.OpOther},
		{"Do without operand", "Do", nil, contentstream.OpOther},
		{"save", "q", nil, contentstream.OpSave},
		{"restore", "Q", nil, contentstream.OpRestore},
		{"text", "Tj", nil, contentstream.OpOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toOperation(tt.op, tt.args, lookup)
			if got.Kind != tt.want {
				t.Errorf("toOperation(%q).Kind = %v, want %v", tt.op, got.Kind, tt.want)
			}
			if got.Operator != tt.op {
				t.Errorf("Operator = %q, want %q", got.Operator, tt.op)
			}
		})
	}
}

func TestToOperation_TransformArgs(t *testing.T) {
	got := toOperation("cm", nums(100, 0, 0, -50, 10, 200), kinds(nil))
	want := model.Matrix{100, 0, 0, -50, 10, 200}
	if got.Matrix() != want {
		t.Errorf("Matrix() = %v, want %v", got.Matrix(), want)
	}
}

func TestToOperation_PaintName(t *testing.T) {
	got := toOperation("Do", []operand{{name: "Im7"}}, kinds(map[string]xobjectKind{"Im7": xobjectImage}))
	if got.Name != "Im7" {
		t.Errorf("Name = %q, want Im7", got.Name)
	}
}

func TestKindFromSubtype(t *testing.T) {
	if kindFromSubtype("Image") != xobjectImage || kindFromSubtype("Form") != xobjectForm || kindFromSubtype("PS") != xobjectUnknown {
		t.Error("unexpected subtype classification")
	}
}

func TestInterpretContents_Null(t *testing.T) {
	ops := interpretContents(pdf.Value{}, pdf.Value{})
	if ops == nil || len(ops) != 0 {
		t.Errorf("interpretContents(null) = %v, want empty slice", ops)
	}
}
