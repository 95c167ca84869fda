package reader

import (
	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pdflayout/contentstream"
)

// maxFormDepth bounds nested form XObject expansion.
const maxFormDepth = 8

// xobjectKind classifies an XObject by its /Subtype.
type xobjectKind int

const (
	xobjectUnknown xobjectKind = iota
	xobjectImage
	xobjectForm
)

func kindFromSubtype(subtype string) xobjectKind {
	switch subtype {
	case "Image":
		return xobjectImage
	case "Form":
		return xobjectForm
	default:
		return xobjectUnknown
	}
}

// operand is a content stream operand reduced to what the operators of
// interest need.
type operand struct {
	num   float64
	isNum bool
	name  string
}

func toOperand(v pdf.Value) operand {
	switch v.Kind() {
	case pdf.Integer, pdf.Real:
		return operand{num: v.Float64(), isNum: true}
	case pdf.Name:
		return operand{name: v.Name()}
	default:
		return operand{}
	}
}

// toOperation converts one operator and its operands into a record. kindOf
// resolves XObject names for Do; forms must be handled by the caller.
func toOperation(op string, args []operand, kindOf func(name string) xobjectKind) contentstream.Operation {
	switch op {
	case "cm":
		if len(args) != 6 {
			return contentstream.Other(op)
		}
		var m [6]float64
		for i, a := range args {
			if !a.isNum {
				return contentstream.Other(op)
			}
			m[i] = a.num
		}
		return contentstream.Transform(m[0], m[1], m[2], m[3], m[4], m[5])
	case "Do":
		if name := lastName(args); name != "" && kindOf(name) == xobjectImage {
			return contentstream.PaintImage(name)
		}
		return contentstream.Other(op)
	case "q":
		return contentstream.Save()
	case "Q":
		return contentstream.Restore()
	default:
		return contentstream.Other(op)
	}
}

func lastName(args []operand) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1].name
}

// interpreter collects operator records from content streams.
type interpreter struct {
	ops []contentstream.Operation
}

// interpretContents records the operators of a page's /Contents, which may be
// a single stream or an array of streams.
func interpretContents(contents, resources pdf.Value) []contentstream.Operation {
	in := &interpreter{ops: []contentstream.Operation{}}
	in.run(contents, resources, 0)
	return in.ops
}

func (in *interpreter) run(strm, resources pdf.Value, depth int) {
	if strm.Kind() == pdf.Array {
		for i := 0; i < strm.Len(); i++ {
			in.run(strm.Index(i), resources, depth)
		}
		return
	}
	if strm.Kind() != pdf.Stream {
		return
	}

	xobjects := resources.Key("XObject")
	kindOf := func(name string) xobjectKind {
		return kindFromSubtype(xobjects.Key(name).Key("Subtype").Name())
	}

	pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
		n := stk.Len()
		args := make([]operand, n)
		for i := n - 1; i >= 0; i-- {
			args[i] = toOperand(stk.Pop())
		}

		if op == "Do" {
			name := lastName(args)
			if name != "" && kindOf(name) == xobjectForm && depth < maxFormDepth {
				in.expandForm(xobjects.Key(name), resources, depth)
				return
			}
		}

		in.ops = append(in.ops, toOperation(op, args, kindOf))
	})
}

// expandForm inlines a form XObject between q and Q. A form without its own
// resources uses the resources of the stream that painted it.
func (in *interpreter) expandForm(form, resources pdf.Value, depth int) {
	formResources := form.Key("Resources")
	if formResources.IsNull() {
		formResources = resources
	}

	in.ops = append(in.ops, contentstream.Save())
	in.run(form, formResources, depth+1)
	in.ops = append(in.ops, contentstream.Restore())
}
