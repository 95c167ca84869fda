// Package contentstream defines the operator records a document decoder
// produces for a page.
//
// A page's content stream is reduced to an ordered list of [Operation]
// values. Only the operators that affect image placement are classified;
// everything else is kept as [OpOther] so that stream order is preserved.
//
//	ops := []contentstream.Operation{
//	    contentstream.Save(),
//	    contentstream.Transform(100, 0, 0, 50, 10, 150),
//	    contentstream.PaintImage("Im1"),
//	    contentstream.Restore(),
//	}
//
// # Classified Operators
//
//   - cm - [OpTransform], six numeric arguments [a b c d e f]
//   - Do on an image XObject - [OpPaintImage], Name holds the XObject name
//   - q, Q - [OpSave], [OpRestore]
package contentstream
