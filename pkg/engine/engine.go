// Package engine defines the boundary between the seam editor and the
// data-linking engine it wraps. The editor never constructs link objects
// directly; it inspects them through the shape facets below and replaces
// them through the transactional Editor.
// See docs/ARCHITECTURE.md § Engine Boundary.
package engine

import "github.com/mesh-intelligence/seam/pkg/types"

// FunctionEntry describes one registered transformation function. Entries
// are read from the engine's function registry exactly once per process, at
// cache build time.
type FunctionEntry struct {
	// Name is the underlying callable name (e.g. "identity").
	Name string

	// Display is an optional menu name; when empty the catalog falls back
	// to Name.
	Display string

	// Category is the grouping label.
	Category string

	// Info is an optional human-readable description.
	Info string

	// InputLabels are the declared input slot names, in parameter order.
	InputLabels []string

	// OutputLabels are the declared output slot names. Only functions with
	// exactly one output are exposed in the capability catalog.
	OutputLabels []string

	// Invertible marks functions the engine can apply in both directions.
	Invertible bool
}

// HelperEntry describes one registered link helper: a capability producing a
// structured multi-attribute relation (coordinate transforms, joins,
// pairwise identity helpers).
type HelperEntry struct {
	// ClassName is the helper's class name, used for capability
	// re-location when a link of this kind is edited.
	ClassName string

	// Display is an optional menu name; when empty the catalog falls back
	// to ClassName.
	Display string

	// Category is the grouping label.
	Category string

	// Description is an optional human-readable description.
	Description string

	// Labels1 and Labels2 are per-slot names for multi-slot helpers.
	Labels1 []string
	Labels2 []string

	// CIDIndependent marks helpers that wire whole datasets and need no
	// attribute-level slot assignment.
	CIDIndependent bool
}

// Registry is the queryable capability surface of the engine. Both calls may
// trigger lazy plugin loading and are treated as expensive: the cache layer
// guarantees each is invoked at most once per process.
type Registry interface {
	Functions() ([]FunctionEntry, error)
	Helpers() ([]HelperEntry, error)
}

// Link is an opaque engine-owned relation between attributes of two
// datasets. Links are immutable once created; edits produce a replacement.
//
// ID must be a stable identity key that survives wrapper-object churn:
// removal and replacement match links by ID, never by pointer or structural
// equality.
type Link interface {
	ID() string

	// Kind is the engine-side class or kind name, used for capability
	// re-location and display fallbacks.
	Kind() string
}

// PairwiseLink is the facet of links with a direct two-endpoint attribute
// pair and direct dataset references.
type PairwiseLink interface {
	Link
	Pair() (attr1, attr2 *types.Attribute)
	PairDatasets() (data1, data2 *types.Dataset)
}

// TupleLink is the facet of links exposing symmetric per-side attribute
// lists with per-slot labels. Coordinate transforms expose tuples of size
// two or more; join links may expose single-element tuples, which is why
// tuple size is checked before the join facet during classification.
type TupleLink interface {
	Link
	Tuple1() []*types.Attribute
	Tuple2() []*types.Attribute
	TupleLabels1() []string
	TupleLabels2() []string
	TupleDatasets() (data1, data2 *types.Dataset)
}

// JoinerLink is the facet of database-style key joins. The engine's equality
// rule treats similarly-parameterized joins between the same dataset pair as
// duplicates.
type JoinerLink interface {
	Link
	JoinKeys() (key1, key2 *types.Attribute)
	JoinDatasets() (data1, data2 *types.Dataset)
}

// FunctionLink is the facet of N-to-1 transformation links.
type FunctionLink interface {
	Link
	Inputs() []*types.Attribute
	Output() *types.Attribute
	FunctionName() string
	Invertible() bool
}

// Describer is an optional facet for links carrying an engine-provided
// textual description.
type Describer interface {
	Description() string
}

// Collection is the engine's shared link collection. The editor's discipline
// is to always replace the set wholesale via SetLinks so that no observer
// sees a transiently inconsistent link set.
type Collection interface {
	// Links returns a snapshot of the current link set.
	Links() []Link

	// SetLinks atomically replaces the whole link set. Returns
	// types.ErrDuplicateJoin if the new set contains two
	// similarly-parameterized joins between the same dataset pair.
	SetLinks(links []Link) error

	// RemoveAt removes the link at the given position. Returns
	// types.ErrIndexOutOfRange for stale positions.
	RemoveAt(index int) error

	// Datasets returns the session's datasets in order.
	Datasets() []*types.Dataset
}

// Pending is a staged link under construction inside an Editor. Simple
// capabilities expose direct endpoint setters; capabilities with declared
// slot names expose named slots.
type Pending interface {
	// SetAttr1 and SetAttr2 set the two endpoints of a simple capability
	// (or the first slot of each side of a slotted one).
	SetAttr1(attr *types.Attribute) error
	SetAttr2(attr *types.Attribute) error

	// Slots1 and Slots2 return the declared slot names per side; empty for
	// simple capabilities.
	Slots1() []string
	Slots2() []string

	// SetSlot assigns an attribute to a named slot. Names are resolved on
	// side 1 before side 2, so a capability must declare slot names unique
	// across both sides for every slot to be addressable. Returns
	// types.ErrSlotUnknown for undeclared names.
	SetSlot(name string, attr *types.Attribute) error
}

// Editor is the engine's temporary, transactional editor state. It stages a
// copy of the collection's links; Commit applies all staged changes back to
// the collection in one atomic replace.
type Editor interface {
	// SetDatasets selects the source and target datasets for new links.
	SetDatasets(data1, data2 *types.Dataset)

	// Staged returns the current staging list.
	Staged() []Link

	// Pop removes and returns the staged link at the given position.
	Pop(index int) (Link, error)

	// NewLink stages a new link created from the given capability.
	NewLink(capability types.Capability) (Pending, error)

	// Commit atomically replaces the collection's link set with the staged
	// links plus all materialized pending links. On error the collection
	// is left unchanged.
	Commit() error
}

// Engine is the full surface the editor consumes: the capability registries,
// the shared collection, the transactional editor, and the lowest-level
// direct pair creation used as the final edit fallback.
type Engine interface {
	Registry

	Collection() Collection

	NewEditor() Editor

	// AddPair creates a direct pairwise link, bypassing the capability
	// system. Final fallback when no capability can be re-located.
	AddPair(data1 *types.Dataset, attr1 *types.Attribute, data2 *types.Dataset, attr2 *types.Attribute) error
}
