// Concrete link types. Each implements the shape facets it exposes to the
// classifier; joins additionally expose single-element tuples, which is the
// structural overlap the classifier's ordered tests account for.
package memengine

import (
	"fmt"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// pairwiseLink relates one attribute of each dataset (identity or
// bidirectional).
type pairwiseLink struct {
	id    string
	attr1 *types.Attribute
	attr2 *types.Attribute
	data1 *types.Dataset
	data2 *types.Dataset
}

var _ engine.PairwiseLink = (*pairwiseLink)(nil)

func (l *pairwiseLink) ID() string   { return l.id }
func (l *pairwiseLink) Kind() string { return "pairwise" }

func (l *pairwiseLink) Pair() (*types.Attribute, *types.Attribute) {
	return l.attr1, l.attr2
}

func (l *pairwiseLink) PairDatasets() (*types.Dataset, *types.Dataset) {
	return l.data1, l.data2
}

// functionLink is an N-to-1 transformation link.
type functionLink struct {
	id         string
	name       string
	inputs     []*types.Attribute
	output     *types.Attribute
	invertible bool
}

var _ engine.FunctionLink = (*functionLink)(nil)

func (l *functionLink) ID() string   { return l.id }
func (l *functionLink) Kind() string { return l.name }

func (l *functionLink) Inputs() []*types.Attribute {
	return append([]*types.Attribute(nil), l.inputs...)
}

func (l *functionLink) Output() *types.Attribute { return l.output }
func (l *functionLink) FunctionName() string     { return l.name }
func (l *functionLink) Invertible() bool         { return l.invertible }

// coordinateLink is an N-to-N tuple transform (e.g. a coordinate frame
// conversion).
type coordinateLink struct {
	id          string
	class       string
	description string
	tuple1      []*types.Attribute
	tuple2      []*types.Attribute
	labels1     []string
	labels2     []string
	data1       *types.Dataset
	data2       *types.Dataset
}

var _ engine.TupleLink = (*coordinateLink)(nil)
var _ engine.Describer = (*coordinateLink)(nil)

func (l *coordinateLink) ID() string   { return l.id }
func (l *coordinateLink) Kind() string { return l.class }

func (l *coordinateLink) Tuple1() []*types.Attribute {
	return append([]*types.Attribute(nil), l.tuple1...)
}

func (l *coordinateLink) Tuple2() []*types.Attribute {
	return append([]*types.Attribute(nil), l.tuple2...)
}

func (l *coordinateLink) TupleLabels1() []string { return append([]string(nil), l.labels1...) }
func (l *coordinateLink) TupleLabels2() []string { return append([]string(nil), l.labels2...) }

func (l *coordinateLink) TupleDatasets() (*types.Dataset, *types.Dataset) {
	return l.data1, l.data2
}

func (l *coordinateLink) Description() string { return l.description }

// joinLink is a database-style key correspondence.
type joinLink struct {
	id    string
	key1  *types.Attribute
	key2  *types.Attribute
	data1 *types.Dataset
	data2 *types.Dataset
}

var _ engine.JoinerLink = (*joinLink)(nil)
var _ engine.TupleLink = (*joinLink)(nil)
var _ fmt.Stringer = (*joinLink)(nil)

func (l *joinLink) ID() string   { return l.id }
func (l *joinLink) Kind() string { return "join" }

func (l *joinLink) JoinKeys() (*types.Attribute, *types.Attribute) {
	return l.key1, l.key2
}

func (l *joinLink) JoinDatasets() (*types.Dataset, *types.Dataset) {
	return l.data1, l.data2
}

func (l *joinLink) Tuple1() []*types.Attribute { return []*types.Attribute{l.key1} }
func (l *joinLink) Tuple2() []*types.Attribute { return []*types.Attribute{l.key2} }
func (l *joinLink) TupleLabels1() []string     { return []string{"key1"} }
func (l *joinLink) TupleLabels2() []string     { return []string{"key2"} }

func (l *joinLink) TupleDatasets() (*types.Dataset, *types.Dataset) {
	return l.data1, l.data2
}

func (l *joinLink) String() string {
	return fmt.Sprintf("Join %s == %s", l.key1.DisplayLabel(), l.key2.DisplayLabel())
}

// joinsEqual applies the engine's join equality rule: two joins between the
// same dataset pair with the same key attributes are the same join, in
// either orientation.
func joinsEqual(a, b *joinLink) bool {
	if a == nil || b == nil {
		return false
	}
	if a.key1 == nil || a.key2 == nil || b.key1 == nil || b.key2 == nil {
		return false
	}
	forward := a.data1.DatasetID == b.data1.DatasetID && a.data2.DatasetID == b.data2.DatasetID &&
		a.key1.AttributeID == b.key1.AttributeID && a.key2.AttributeID == b.key2.AttributeID
	reverse := a.data1.DatasetID == b.data2.DatasetID && a.data2.DatasetID == b.data1.DatasetID &&
		a.key1.AttributeID == b.key2.AttributeID && a.key2.AttributeID == b.key1.AttributeID
	return forward || reverse
}
