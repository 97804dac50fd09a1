package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/seam/internal/memengine"
	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// editFixture is a seeded engine with two datasets and a built linker.
type editFixture struct {
	eng *memengine.Engine
	lnk *Linker
	d1  *types.Dataset
	d2  *types.Dataset
}

func newEditFixture(t *testing.T) *editFixture {
	t.Helper()
	eng := memengine.NewWithDefaults()

	d1, err := eng.NewDataset("catalog")
	require.NoError(t, err)
	for _, label := range []string{"ra", "dec", "flux", "id"} {
		_, err := eng.AddAttribute(d1, label)
		require.NoError(t, err)
	}
	d2, err := eng.NewDataset("image")
	require.NoError(t, err)
	for _, label := range []string{"x", "y", "value"} {
		_, err := eng.AddAttribute(d2, label)
		require.NoError(t, err)
	}

	lnk := New(eng)
	require.NoError(t, lnk.BuildCache())
	return &editFixture{eng: eng, lnk: lnk, d1: d1, d2: d2}
}

// createFromCapability commits one link built from the named capability and
// returns it.
func (f *editFixture) createFromCapability(t *testing.T, cap types.Capability) engine.Link {
	t.Helper()
	ed := f.eng.NewEditor()
	ed.SetDatasets(f.d1, f.d2)
	_, err := ed.NewLink(cap)
	require.NoError(t, err)
	require.NoError(t, ed.Commit())

	links := f.eng.Links()
	return links[len(links)-1]
}

func TestApplyEditPairwise(t *testing.T) {
	f := newEditFixture(t)
	require.NoError(t, f.eng.AddPair(f.d1, f.d1.Attributes[0], f.d2, f.d2.Attributes[0]))
	require.NoError(t, f.eng.AddPair(f.d1, f.d1.Attributes[1], f.d2, f.d2.Attributes[1]))

	target := f.eng.Links()[0]
	pos, err := f.lnk.ApplyEdit(target, Side2, 0, 2)
	require.NoError(t, err)

	// The rebuilt link is appended; the collection size is unchanged.
	links := f.eng.Links()
	assert.Equal(t, len(links)-1, pos)
	assert.Len(t, links, 2)

	pw, ok := links[pos].(engine.PairwiseLink)
	require.True(t, ok, "edited link keeps its pairwise shape")
	a1, a2 := pw.Pair()
	assert.Equal(t, "ra", a1.Label)
	assert.Equal(t, "value", a2.Label)

	// The old link is gone.
	for _, ln := range links {
		assert.NotEqual(t, target.ID(), ln.ID())
	}
}

func TestApplyEditFunctionPreservesOtherSlots(t *testing.T) {
	f := newEditFixture(t)
	cap, ok := f.lnk.Cache().FunctionByName("lengths_to_volume")
	require.True(t, ok)
	target := f.createFromCapability(t, cap)

	pos, err := f.lnk.ApplyEdit(target, Side1, 2, 3)
	require.NoError(t, err)

	fl, ok := f.eng.Links()[pos].(engine.FunctionLink)
	require.True(t, ok, "edited link keeps its function shape")
	inputs := fl.Inputs()
	require.Len(t, inputs, 3)
	assert.Equal(t, "ra", inputs[0].Label)
	assert.Equal(t, "dec", inputs[1].Label)
	assert.Equal(t, "id", inputs[2].Label, "only the edited slot changed")
	assert.Equal(t, "lengths_to_volume", fl.FunctionName())
}

func TestApplyEditCoordinatePreservesKind(t *testing.T) {
	f := newEditFixture(t)
	cap, ok := f.lnk.Cache().HelperByClass("ICRS_to_Galactic")
	require.True(t, ok)
	target := f.createFromCapability(t, cap)

	pos, err := f.lnk.ApplyEdit(target, Side1, 1, 2)
	require.NoError(t, err)

	edited := f.eng.Links()[pos]
	assert.Equal(t, "ICRS_to_Galactic", edited.Kind())

	tl, ok := edited.(engine.TupleLink)
	require.True(t, ok)
	tuple1 := tl.Tuple1()
	require.Len(t, tuple1, 2)
	assert.Equal(t, "ra", tuple1[0].Label)
	assert.Equal(t, "flux", tuple1[1].Label)
}

func TestApplyEditJoinAvoidsDuplicateRejection(t *testing.T) {
	f := newEditFixture(t)
	cap, ok := f.lnk.Cache().HelperByClass("JoinOnKey")
	require.True(t, ok)
	target := f.createFromCapability(t, cap)

	// Rebuilding a join while the original is still in the collection would
	// trip the duplicate-join rule; the edit must pre-remove it.
	pos, err := f.lnk.ApplyEdit(target, Side2, 0, 1)
	require.NoError(t, err)

	links := f.eng.Links()
	assert.Len(t, links, 1)
	jl, ok := links[pos].(engine.JoinerLink)
	require.True(t, ok)
	_, key2 := jl.JoinKeys()
	assert.Equal(t, "y", key2.Label)
}

func TestApplyEditFallsBackWithoutCapabilities(t *testing.T) {
	// An engine with an empty registry: relocation and the identity
	// fallback both fail, leaving direct pair creation.
	eng := memengine.New()
	d1, err := eng.NewDataset("catalog")
	require.NoError(t, err)
	a1, err := eng.AddAttribute(d1, "ra")
	require.NoError(t, err)
	_, err = eng.AddAttribute(d1, "dec")
	require.NoError(t, err)
	d2, err := eng.NewDataset("image")
	require.NoError(t, err)
	b1, err := eng.AddAttribute(d2, "x")
	require.NoError(t, err)
	_, err = eng.AddAttribute(d2, "y")
	require.NoError(t, err)

	lnk := New(eng)
	require.NoError(t, lnk.BuildCache())
	require.NoError(t, eng.AddPair(d1, a1, d2, b1))

	// Pairwise links from AddPair have kind "pairwise"; with no helper of
	// that class registered the edit still succeeds.
	pos, err := lnk.ApplyEdit(eng.Links()[0], Side2, 0, 1)
	require.NoError(t, err)

	links := eng.Links()
	assert.Len(t, links, 1)
	pw, ok := links[pos].(engine.PairwiseLink)
	require.True(t, ok)
	attr1, attr2 := pw.Pair()
	assert.Equal(t, "ra", attr1.Label)
	assert.Equal(t, "y", attr2.Label)
}

// identityOnlyEngine is an engine whose registry holds the identity
// function and nothing else, so capability re-location always fails but
// the identity fallback is available.
func identityOnlyEngine(t *testing.T) (*memengine.Engine, *types.Dataset, *types.Dataset) {
	t.Helper()
	eng := memengine.New()
	eng.RegisterFunction(engine.FunctionEntry{
		Name:         "identity",
		Category:     types.CategoryGeneral,
		Info:         "Link attributes with identical values",
		InputLabels:  []string{"x"},
		OutputLabels: []string{"y"},
		Invertible:   true,
	})

	d1, err := eng.NewDataset("catalog")
	require.NoError(t, err)
	for _, label := range []string{"ra", "dec", "flux"} {
		_, err := eng.AddAttribute(d1, label)
		require.NoError(t, err)
	}
	d2, err := eng.NewDataset("image")
	require.NoError(t, err)
	for _, label := range []string{"x", "y"} {
		_, err := eng.AddAttribute(d2, label)
		require.NoError(t, err)
	}
	return eng, d1, d2
}

func TestApplyEditFallsBackToIdentity(t *testing.T) {
	eng, d1, d2 := identityOnlyEngine(t)
	lnk := New(eng)
	require.NoError(t, lnk.BuildCache())

	// No helper of class "pairwise" is registered, so the originating
	// capability cannot be re-located; the edit lands on identity.
	require.NoError(t, eng.AddPair(d1, d1.Attributes[0], d2, d2.Attributes[0]))
	pos, err := lnk.ApplyEdit(eng.Links()[0], Side2, 0, 1)
	require.NoError(t, err)

	links := eng.Links()
	assert.Len(t, links, 1)
	fl, ok := links[pos].(engine.FunctionLink)
	require.True(t, ok)
	assert.Equal(t, "identity", fl.FunctionName())
	require.Len(t, fl.Inputs(), 1)
	assert.Equal(t, "ra", fl.Inputs()[0].Label)
	assert.Equal(t, "y", fl.Output().Label)
}

func TestApplyEditIdentityFallbackCollapsesMultiSlot(t *testing.T) {
	eng, d1, d2 := identityOnlyEngine(t)
	target := &fakeTupleLink{
		id:     "t1",
		kind:   "Custom",
		tuple1: []*types.Attribute{d1.Attributes[0], d1.Attributes[1]},
		tuple2: []*types.Attribute{d2.Attributes[0], d2.Attributes[1]},
	}
	require.NoError(t, eng.SetLinks([]engine.Link{target}))
	lnk := New(eng)
	require.NoError(t, lnk.BuildCache())

	// Identity takes a single attribute pair: the edited attribute keeps
	// its side, the other side keeps its leading attribute.
	pos, err := lnk.ApplyEdit(target, Side1, 1, 2)
	require.NoError(t, err)

	links := eng.Links()
	assert.Len(t, links, 1)
	fl, ok := links[pos].(engine.FunctionLink)
	require.True(t, ok)
	assert.Equal(t, "identity", fl.FunctionName())
	require.Len(t, fl.Inputs(), 1)
	assert.Equal(t, "flux", fl.Inputs()[0].Label)
	assert.Equal(t, "x", fl.Output().Label)
}

func TestApplyEditRejectsBadArguments(t *testing.T) {
	f := newEditFixture(t)
	require.NoError(t, f.eng.AddPair(f.d1, f.d1.Attributes[0], f.d2, f.d2.Attributes[0]))
	target := f.eng.Links()[0]

	_, err := f.lnk.ApplyEdit(target, 3, 0, 0)
	assert.ErrorIs(t, err, types.ErrSlotOutOfRange)

	_, err = f.lnk.ApplyEdit(target, Side1, 5, 0)
	assert.ErrorIs(t, err, types.ErrSlotOutOfRange)

	_, err = f.lnk.ApplyEdit(target, Side1, 0, 99)
	assert.ErrorIs(t, err, types.ErrAttributeOutOfRange)

	_, err = f.lnk.ApplyEdit(&fakeOpaqueLink{id: "o1", kind: "Custom"}, Side1, 0, 0)
	assert.ErrorIs(t, err, types.ErrNoDescriptor)

	// The collection is untouched by rejected edits.
	assert.Len(t, f.eng.Links(), 1)
}

func TestRemove(t *testing.T) {
	f := newEditFixture(t)
	require.NoError(t, f.eng.AddPair(f.d1, f.d1.Attributes[0], f.d2, f.d2.Attributes[0]))
	require.NoError(t, f.eng.AddPair(f.d1, f.d1.Attributes[1], f.d2, f.d2.Attributes[1]))

	target := f.eng.Links()[0]
	require.NoError(t, f.lnk.Remove(target))

	links := f.eng.Links()
	require.Len(t, links, 1)
	assert.NotEqual(t, target.ID(), links[0].ID())

	assert.ErrorIs(t, f.lnk.Remove(target), types.ErrLinkNotFound)
	assert.ErrorIs(t, f.lnk.Remove(nil), types.ErrLinkNotFound)
}
