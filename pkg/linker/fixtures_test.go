package linker

import (
	"fmt"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// testDataset builds a dataset with labeled attributes and deterministic IDs.
func testDataset(label string, attrs ...string) *types.Dataset {
	d := &types.Dataset{DatasetID: "ds-" + label, Label: label}
	for i, a := range attrs {
		d.Attributes = append(d.Attributes, &types.Attribute{
			AttributeID: fmt.Sprintf("%s-attr-%d", label, i),
			Label:       a,
			Dataset:     d,
		})
	}
	return d
}

// fakeRegistry counts queries so tests can assert the cache builds once.
type fakeRegistry struct {
	functions     []engine.FunctionEntry
	helpers       []engine.HelperEntry
	functionErr   error
	helperErr     error
	functionCalls int
	helperCalls   int
}

func (r *fakeRegistry) Functions() ([]engine.FunctionEntry, error) {
	r.functionCalls++
	return r.functions, r.functionErr
}

func (r *fakeRegistry) Helpers() ([]engine.HelperEntry, error) {
	r.helperCalls++
	return r.helpers, r.helperErr
}

// fakeEngine exposes a fake registry behind the full engine surface for
// tests that never touch the collection.
type fakeEngine struct {
	reg *fakeRegistry
}

func (e *fakeEngine) Functions() ([]engine.FunctionEntry, error) { return e.reg.Functions() }
func (e *fakeEngine) Helpers() ([]engine.HelperEntry, error)     { return e.reg.Helpers() }
func (e *fakeEngine) Collection() engine.Collection              { return nil }
func (e *fakeEngine) NewEditor() engine.Editor                   { return nil }
func (e *fakeEngine) AddPair(data1 *types.Dataset, attr1 *types.Attribute, data2 *types.Dataset, attr2 *types.Attribute) error {
	return nil
}

// Fake links exercising each shape facet in isolation.

type fakePairLink struct {
	id     string
	a1, a2 *types.Attribute
}

func (f *fakePairLink) ID() string   { return f.id }
func (f *fakePairLink) Kind() string { return "LinkSame" }
func (f *fakePairLink) Pair() (*types.Attribute, *types.Attribute) {
	return f.a1, f.a2
}
func (f *fakePairLink) PairDatasets() (*types.Dataset, *types.Dataset) {
	return f.a1.Dataset, f.a2.Dataset
}

type fakeTupleLink struct {
	id       string
	kind     string
	tuple1   []*types.Attribute
	tuple2   []*types.Attribute
	labels1  []string
	labels2  []string
	describe string
}

func (f *fakeTupleLink) ID() string                 { return f.id }
func (f *fakeTupleLink) Kind() string               { return f.kind }
func (f *fakeTupleLink) Tuple1() []*types.Attribute { return f.tuple1 }
func (f *fakeTupleLink) Tuple2() []*types.Attribute { return f.tuple2 }
func (f *fakeTupleLink) TupleLabels1() []string     { return f.labels1 }
func (f *fakeTupleLink) TupleLabels2() []string     { return f.labels2 }
func (f *fakeTupleLink) TupleDatasets() (*types.Dataset, *types.Dataset) {
	return f.tuple1[0].Dataset, f.tuple2[0].Dataset
}
func (f *fakeTupleLink) Description() string { return f.describe }

// fakeJoinLink exposes its keys both as join keys and as single-element
// tuples, mirroring engine joins.
type fakeJoinLink struct {
	id         string
	key1, key2 *types.Attribute
}

func (f *fakeJoinLink) ID() string   { return f.id }
func (f *fakeJoinLink) Kind() string { return "JoinOnKey" }
func (f *fakeJoinLink) JoinKeys() (*types.Attribute, *types.Attribute) {
	return f.key1, f.key2
}
func (f *fakeJoinLink) JoinDatasets() (*types.Dataset, *types.Dataset) {
	return f.key1.Dataset, f.key2.Dataset
}
func (f *fakeJoinLink) Tuple1() []*types.Attribute { return []*types.Attribute{f.key1} }
func (f *fakeJoinLink) Tuple2() []*types.Attribute { return []*types.Attribute{f.key2} }
func (f *fakeJoinLink) TupleLabels1() []string     { return []string{"key1"} }
func (f *fakeJoinLink) TupleLabels2() []string     { return []string{"key2"} }
func (f *fakeJoinLink) TupleDatasets() (*types.Dataset, *types.Dataset) {
	return f.key1.Dataset, f.key2.Dataset
}
func (f *fakeJoinLink) String() string {
	return fmt.Sprintf("Join %s == %s", f.key1.DisplayLabel(), f.key2.DisplayLabel())
}

type fakeFunctionLink struct {
	id         string
	name       string
	inputs     []*types.Attribute
	output     *types.Attribute
	invertible bool
}

func (f *fakeFunctionLink) ID() string                 { return f.id }
func (f *fakeFunctionLink) Kind() string               { return f.name }
func (f *fakeFunctionLink) Inputs() []*types.Attribute { return f.inputs }
func (f *fakeFunctionLink) Output() *types.Attribute   { return f.output }
func (f *fakeFunctionLink) FunctionName() string       { return f.name }
func (f *fakeFunctionLink) Invertible() bool           { return f.invertible }

// fakeOpaqueLink matches no shape facet.
type fakeOpaqueLink struct {
	id       string
	kind     string
	describe string
}

func (f *fakeOpaqueLink) ID() string   { return f.id }
func (f *fakeOpaqueLink) Kind() string { return f.kind }
func (f *fakeOpaqueLink) Description() string {
	return f.describe
}
