// Package memengine implements an in-process linking engine behind the
// pkg/engine boundary: a capability registry, a shared link collection with
// atomic wholesale replacement, and the transactional editor used by the
// edit protocol.
// See docs/ARCHITECTURE.md § Reference Engine.
package memengine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

var _ engine.Engine = (*Engine)(nil)
var _ engine.Collection = (*Engine)(nil)

// Engine is an in-memory linking engine. The link collection is a single
// shared resource; every mutation replaces the whole set copy-on-write so
// no reader observes a transiently inconsistent state.
type Engine struct {
	mu        sync.RWMutex
	functions []engine.FunctionEntry
	helpers   []engine.HelperEntry
	datasets  []*types.Dataset
	links     []engine.Link
}

// New creates an empty engine with no registered capabilities.
func New() *Engine {
	return &Engine{}
}

// NewWithDefaults creates an engine seeded with the default capability
// registry (identity, the stock functions, and the stock helpers).
func NewWithDefaults() *Engine {
	e := New()
	e.Seed(DefaultFunctions(), DefaultHelpers())
	return e
}

// Seed registers capability entries in bulk.
func (e *Engine) Seed(functions []engine.FunctionEntry, helpers []engine.HelperEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.functions = append(e.functions, functions...)
	e.helpers = append(e.helpers, helpers...)
}

// RegisterFunction adds one function entry to the registry.
func (e *Engine) RegisterFunction(f engine.FunctionEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.functions = append(e.functions, f)
}

// RegisterHelper adds one helper entry to the registry.
func (e *Engine) RegisterHelper(h engine.HelperEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.helpers = append(e.helpers, h)
}

// Functions returns the registered function entries.
func (e *Engine) Functions() ([]engine.FunctionEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]engine.FunctionEntry(nil), e.functions...), nil
}

// Helpers returns the registered helper entries.
func (e *Engine) Helpers() ([]engine.HelperEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]engine.HelperEntry(nil), e.helpers...), nil
}

// Collection returns the engine's link collection.
func (e *Engine) Collection() engine.Collection { return e }

// Links returns a snapshot of the current link set.
func (e *Engine) Links() []engine.Link {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]engine.Link(nil), e.links...)
}

// SetLinks atomically replaces the whole link set. The set is validated
// first: two similarly-parameterized joins between the same dataset pair
// are duplicates and the replacement is rejected wholesale.
func (e *Engine) SetLinks(links []engine.Link) error {
	if err := validateJoins(links); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.links = append([]engine.Link(nil), links...)
	return nil
}

// RemoveAt removes the link at the given position.
func (e *Engine) RemoveAt(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.links) {
		return types.ErrIndexOutOfRange
	}
	next := make([]engine.Link, 0, len(e.links)-1)
	next = append(next, e.links[:index]...)
	next = append(next, e.links[index+1:]...)
	e.links = next
	return nil
}

// Datasets returns the session's datasets in order.
func (e *Engine) Datasets() []*types.Dataset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*types.Dataset(nil), e.datasets...)
}

// DatasetByLabel finds a dataset by its display label.
func (e *Engine) DatasetByLabel(label string) (*types.Dataset, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, d := range e.datasets {
		if d.Label == label {
			return d, true
		}
	}
	return nil, false
}

// NewDataset creates and registers an empty dataset.
func (e *Engine) NewDataset(label string) (*types.Dataset, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	d := &types.Dataset{DatasetID: id, Label: label}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.datasets = append(e.datasets, d)
	return d, nil
}

// AddAttribute appends a new attribute to a dataset.
func (e *Engine) AddAttribute(d *types.Dataset, label string) (*types.Attribute, error) {
	if d == nil {
		return nil, types.ErrDatasetNotFound
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	a := &types.Attribute{AttributeID: id, Label: label, Dataset: d}
	e.mu.Lock()
	defer e.mu.Unlock()
	d.Attributes = append(d.Attributes, a)
	return a, nil
}

// AddPair creates a direct pairwise link, bypassing the capability system.
func (e *Engine) AddPair(data1 *types.Dataset, attr1 *types.Attribute, data2 *types.Dataset, attr2 *types.Attribute) error {
	if data1 == nil || data2 == nil || attr1 == nil || attr2 == nil {
		return types.ErrDatasetNotFound
	}
	id, err := newID()
	if err != nil {
		return err
	}
	ln := &pairwiseLink{id: id, attr1: attr1, attr2: attr2, data1: data1, data2: data2}
	return e.SetLinks(append(e.Links(), ln))
}

// validateJoins rejects link sets containing duplicate joins.
func validateJoins(links []engine.Link) error {
	var joins []*joinLink
	for _, ln := range links {
		if j, ok := ln.(*joinLink); ok {
			joins = append(joins, j)
		}
	}
	for i := 0; i < len(joins); i++ {
		for k := i + 1; k < len(joins); k++ {
			if joinsEqual(joins[i], joins[k]) {
				return fmt.Errorf("%w: %s", types.ErrDuplicateJoin, joins[i])
			}
		}
	}
	return nil
}

// newID generates a UUID v7 identity key.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
