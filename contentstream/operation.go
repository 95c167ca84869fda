package contentstream

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/pdflayout/model"
)

// OpKind classifies an operator record.
type OpKind int

const (
	// OpOther is any operator that does not affect image placement.
	OpOther OpKind = iota
	// OpTransform concatenates a matrix to the CTM (cm).
	OpTransform
	// OpPaintImage paints an image XObject (Do).
	OpPaintImage
	// OpSave pushes the graphics state (q).
	OpSave
	// OpRestore pops the graphics state (Q).
	OpRestore
)

// String returns the PDF operator associated with the kind.
func (k OpKind) String() string {
	switch k {
	case OpTransform:
		return "cm"
	case OpPaintImage:
		return "Do"
	case OpSave:
		return "q"
	case OpRestore:
		return "Q"
	default:
		return "other"
	}
}

// Operation is a single operator record consisting of its kind, the raw
// operator and its numeric operands.
type Operation struct {
	Kind     OpKind
	Operator string    // The operator as written in the stream (e.g., "cm", "Do")
	Args     []float64 // Numeric operands in stream order
	Name     string    // Name operand, e.g. the XObject painted by Do
}

// Transform creates a cm record.
func Transform(a, b, c, d, e, f float64) Operation {
	return Operation{Kind: OpTransform, Operator: "cm", Args: []float64{a, b, c, d, e, f}}
}

// PaintImage creates a Do record for an image XObject.
func PaintImage(name string) Operation {
	return Operation{Kind: OpPaintImage, Operator: "Do", Name: name}
}

// Save creates a q record.
func Save() Operation {
	return Operation{Kind: OpSave, Operator: "q"}
}

// Restore creates a Q record.
func Restore() Operation {
	return Operation{Kind: OpRestore, Operator: "Q"}
}

// Other records an operator that is kept only for ordering.
func Other(operator string) Operation {
	return Operation{Kind: OpOther, Operator: operator}
}

// Matrix returns the record's operands as a matrix. It is only meaningful
// for OpTransform records.
func (op Operation) Matrix() model.Matrix {
	return model.MatrixFromSlice(op.Args)
}

// String renders the record in content stream syntax.
func (op Operation) String() string {
	var sb strings.Builder
	for _, a := range op.Args {
		sb.WriteString(strconv.FormatFloat(a, 'g', -1, 64))
		sb.WriteByte(' ')
	}
	if op.Name != "" {
		fmt.Fprintf(&sb, "/%s ", op.Name)
	}
	sb.WriteString(op.Operator)
	return sb.String()
}

// CountKind returns how many records in ops have the given kind.
func CountKind(ops []Operation, kind OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
