// LinkInfo is the classified view of an engine link. The shape probing done
// at the engine boundary happens once; everything downstream works from this
// closed union instead of re-probing the opaque link object.
package types

// LinkShape identifies which of the four recognized link shapes a link has.
type LinkShape int

const (
	// ShapeUnknown marks a link that matched none of the recognized shapes.
	// Unknown links are displayed with a generic placeholder and are not
	// editable.
	ShapeUnknown LinkShape = iota

	// ShapePairwise is one attribute of dataset 1 corresponding to one
	// attribute of dataset 2 (identity or bidirectional).
	ShapePairwise

	// ShapeCoordinate is a fixed-size tuple of attributes in dataset 1
	// mapping to a same-size tuple in dataset 2 (e.g. a coordinate frame
	// conversion).
	ShapeCoordinate

	// ShapeJoin is a database-style key correspondence between single key
	// attributes of the two datasets.
	ShapeJoin

	// ShapeFunction is a function with N named inputs from dataset 1 and
	// one output attribute in dataset 2.
	ShapeFunction
)

// String returns the lowercase shape name.
func (s LinkShape) String() string {
	switch s {
	case ShapePairwise:
		return "pairwise"
	case ShapeCoordinate:
		return "coordinate"
	case ShapeJoin:
		return "join"
	case ShapeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// LinkInfo carries the resolved endpoints of a classified link.
type LinkInfo struct {
	// Shape is the classified link shape.
	Shape LinkShape

	// Kind is the engine-side class or kind name (e.g. "ICRS_to_Galactic",
	// "join"), used for capability re-location and display fallbacks.
	Kind string

	// Data1 and Data2 are the resolved endpoint datasets.
	Data1 *Dataset
	Data2 *Dataset

	// Attr1 and Attr2 are the single endpoints for pairwise and join shapes.
	// For function shapes Attr1 is the first input and Attr2 the output.
	Attr1 *Attribute
	Attr2 *Attribute

	// Inputs is the ordered input list for function shapes.
	Inputs []*Attribute

	// Tuple1 and Tuple2 are the per-side attribute tuples for coordinate
	// shapes, with Labels1/Labels2 the engine-provided slot names.
	Tuple1  []*Attribute
	Tuple2  []*Attribute
	Labels1 []string
	Labels2 []string

	// FunctionName is the registered transform-function name for function
	// shapes, empty otherwise.
	FunctionName string

	// Invertible reports whether the engine marks a function link as
	// bidirectional.
	Invertible bool
}

// MultiParam reports whether the link has more than one independently
// editable slot on dataset 1.
func (li *LinkInfo) MultiParam() bool {
	switch li.Shape {
	case ShapeFunction:
		return len(li.Inputs) > 1
	case ShapeCoordinate:
		return len(li.Tuple1) > 1
	default:
		return false
	}
}
