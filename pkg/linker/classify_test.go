package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/seam/pkg/types"
)

func TestClassifyPairwise(t *testing.T) {
	d1 := testDataset("catalog", "ra", "dec")
	d2 := testDataset("image", "x", "y")
	ln := &fakePairLink{id: "p1", a1: d1.Attributes[0], a2: d2.Attributes[1]}

	info, ok := Classify(ln)
	require.True(t, ok)
	assert.Equal(t, types.ShapePairwise, info.Shape)
	assert.Equal(t, "LinkSame", info.Kind)
	assert.Same(t, d1, info.Data1)
	assert.Same(t, d2, info.Data2)
	assert.Equal(t, "ra", info.Attr1.Label)
	assert.Equal(t, "y", info.Attr2.Label)
	assert.False(t, info.MultiParam())
}

func TestClassifyCoordinate(t *testing.T) {
	d1 := testDataset("icrs", "ra", "dec")
	d2 := testDataset("galactic", "l", "b")
	ln := &fakeTupleLink{
		id:      "c1",
		kind:    "ICRS_to_Galactic",
		tuple1:  d1.Attributes,
		tuple2:  d2.Attributes,
		labels1: []string{"ra", "dec"},
		labels2: []string{"l", "b"},
	}

	info, ok := Classify(ln)
	require.True(t, ok)
	assert.Equal(t, types.ShapeCoordinate, info.Shape)
	assert.Len(t, info.Tuple1, 2)
	assert.Len(t, info.Tuple2, 2)
	assert.Equal(t, []string{"l", "b"}, info.Labels2)
	assert.True(t, info.MultiParam())
}

func TestClassifyJoinBeforeTupleFallback(t *testing.T) {
	// Join links also expose their keys as single-element tuples; the join
	// facet must win for them, while real two-or-more tuples win over it.
	d1 := testDataset("obs", "id")
	d2 := testDataset("cat", "source_id")
	ln := &fakeJoinLink{id: "j1", key1: d1.Attributes[0], key2: d2.Attributes[0]}

	info, ok := Classify(ln)
	require.True(t, ok)
	assert.Equal(t, types.ShapeJoin, info.Shape)
	assert.Equal(t, "id", info.Attr1.Label)
	assert.Equal(t, "source_id", info.Attr2.Label)
}

func TestClassifyFunction(t *testing.T) {
	d1 := testDataset("box", "w", "h", "d")
	d2 := testDataset("derived", "vol")
	ln := &fakeFunctionLink{
		id:     "f1",
		name:   "lengths_to_volume",
		inputs: d1.Attributes,
		output: d2.Attributes[0],
	}

	info, ok := Classify(ln)
	require.True(t, ok)
	assert.Equal(t, types.ShapeFunction, info.Shape)
	assert.Equal(t, "lengths_to_volume", info.FunctionName)
	assert.Len(t, info.Inputs, 3)
	assert.True(t, info.MultiParam())
	assert.Same(t, d1, info.Data1)
	assert.Same(t, d2, info.Data2)
}

func TestClassifyUnrecognized(t *testing.T) {
	_, ok := Classify(&fakeOpaqueLink{id: "o1", kind: "ManualLinkCollection"})
	assert.False(t, ok)

	_, ok = Classify(nil)
	assert.False(t, ok)
}

func TestClassifyMissingEndpoints(t *testing.T) {
	d2 := testDataset("image", "x")
	ln := &fakePairLink{id: "p2", a1: &types.Attribute{AttributeID: "detached", Label: "q"}, a2: d2.Attributes[0]}

	// A pairwise link whose attribute has no owning dataset is unusable.
	_, ok := Classify(ln)
	assert.False(t, ok)
}

func newTestLinker() *Linker {
	eng := &fakeEngine{reg: &fakeRegistry{
		functions: stockFunctions(),
		helpers:   stockHelpers(),
	}}
	return New(eng)
}

func TestDescribePairwiseSelections(t *testing.T) {
	d1 := testDataset("catalog", "ra", "dec", "flux")
	d2 := testDataset("image", "x", "y")
	ln := &fakePairLink{id: "p1", a1: d1.Attributes[1], a2: d2.Attributes[0]}

	desc, ok := newTestLinker().Describe(ln)
	require.True(t, ok)
	assert.False(t, desc.MultiParam)
	assert.Len(t, desc.Attr1Options, 3)
	assert.Len(t, desc.Attr2Options, 2)
	assert.Equal(t, 1, desc.Attr1Selected)
	assert.Equal(t, 0, desc.Attr2Selected)
	assert.Equal(t, "dec", desc.Attr1Label)
	assert.Equal(t, "x", desc.Attr2Label)
}

func TestDescribeFunctionSlots(t *testing.T) {
	d1 := testDataset("box", "w", "h", "d", "extra")
	d2 := testDataset("derived", "vol")
	ln := &fakeFunctionLink{
		id:     "f1",
		name:   "lengths_to_volume",
		inputs: []*types.Attribute{d1.Attributes[0], d1.Attributes[1], d1.Attributes[2]},
		output: d2.Attributes[0],
	}

	desc, ok := newTestLinker().Describe(ln)
	require.True(t, ok)
	assert.True(t, desc.MultiParam)
	assert.False(t, desc.CoordinatePair)
	assert.Equal(t, "lengths_to_volume parameters", desc.Attr1Label)
	require.Len(t, desc.Params, 3)

	// Slot names come from the capability's declared input labels.
	assert.Equal(t, "width", desc.Params[0].Name)
	assert.Equal(t, "height", desc.Params[1].Name)
	assert.Equal(t, "depth", desc.Params[2].Name)
	assert.Equal(t, 2, desc.Params[2].Selected)
	assert.Equal(t, "vol", desc.Attr2Label)
}

func TestDescribeCoordinatePair(t *testing.T) {
	d1 := testDataset("icrs", "ra", "dec")
	d2 := testDataset("galactic", "l", "b")
	ln := &fakeTupleLink{
		id:      "c1",
		kind:    "ICRS_to_Galactic",
		tuple1:  d1.Attributes,
		tuple2:  d2.Attributes,
		labels1: []string{"ra", "dec"},
		labels2: []string{"l", "b"},
	}

	desc, ok := newTestLinker().Describe(ln)
	require.True(t, ok)
	assert.True(t, desc.MultiParam)
	assert.True(t, desc.CoordinatePair)
	assert.Equal(t, "ICRS_to_Galactic", desc.CoordinateKind)
	assert.Equal(t, "Dataset 1 coordinates (ICRS_to_Galactic)", desc.Attr1Label)
	require.Len(t, desc.Coords1, 2)
	require.Len(t, desc.Coords2, 2)
	assert.Equal(t, "ra", desc.Coords1[0].Name)
	assert.Equal(t, "b", desc.Coords2[1].Label)
}

func TestDescribeStaleAttributeDefaultsToZero(t *testing.T) {
	d1 := testDataset("catalog", "ra", "dec")
	d2 := testDataset("image", "x", "y")
	stale := &types.Attribute{AttributeID: "gone", Label: "old", Dataset: d1}
	ln := &fakePairLink{id: "p1", a1: stale, a2: d2.Attributes[1]}

	desc, ok := newTestLinker().Describe(ln)
	require.True(t, ok)
	assert.Equal(t, 0, desc.Attr1Selected)
	assert.Equal(t, 1, desc.Attr2Selected)
}

func TestDescribeUnrecognized(t *testing.T) {
	_, ok := newTestLinker().Describe(&fakeOpaqueLink{id: "o1", kind: "Custom"})
	assert.False(t, ok)
}
