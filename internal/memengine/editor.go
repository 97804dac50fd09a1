package memengine

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

var _ engine.Editor = (*editorState)(nil)
var _ engine.Pending = (*pendingLink)(nil)

// editorState is the temporary, transactional editor: it stages a snapshot
// of the collection's links, collects pending new links, and applies
// everything back in one atomic replace on Commit.
type editorState struct {
	eng     *Engine
	data1   *types.Dataset
	data2   *types.Dataset
	staged  []engine.Link
	pending []*pendingLink
}

// NewEditor creates an editor staging the current link set.
func (e *Engine) NewEditor() engine.Editor {
	return &editorState{
		eng:    e,
		staged: e.Links(),
	}
}

// SetDatasets selects the source and target datasets for new links.
func (s *editorState) SetDatasets(data1, data2 *types.Dataset) {
	s.data1 = data1
	s.data2 = data2
}

// Staged returns the current staging list.
func (s *editorState) Staged() []engine.Link {
	return append([]engine.Link(nil), s.staged...)
}

// Pop removes and returns the staged link at the given position.
func (s *editorState) Pop(index int) (engine.Link, error) {
	if index < 0 || index >= len(s.staged) {
		return nil, types.ErrIndexOutOfRange
	}
	ln := s.staged[index]
	next := make([]engine.Link, 0, len(s.staged)-1)
	next = append(next, s.staged[:index]...)
	next = append(next, s.staged[index+1:]...)
	s.staged = next
	return ln, nil
}

// NewLink stages a new link created from the given capability. The pending
// link's slot structure depends on the capability: slotted helpers and
// multi-input functions expose named slots, simple capabilities expose
// direct endpoint setters. All slots start populated with each dataset's
// leading attributes.
func (s *editorState) NewLink(capability types.Capability) (engine.Pending, error) {
	if s.data1 == nil || s.data2 == nil {
		return nil, fmt.Errorf("%w: editor datasets not set", types.ErrDatasetNotFound)
	}
	if len(s.data1.Attributes) == 0 || len(s.data2.Attributes) == 0 {
		return nil, fmt.Errorf("dataset %q or %q has no attributes", s.data1.Label, s.data2.Label)
	}

	p := &pendingLink{data1: s.data1, data2: s.data2}

	switch h := capability.Handle.(type) {
	case engine.FunctionEntry:
		p.kind = pendingFunction
		p.fn = h
		p.slots1 = append([]string(nil), h.InputLabels...)
		p.slots2 = append([]string(nil), h.OutputLabels...)
	case engine.HelperEntry:
		p.helper = h
		switch {
		case strings.Contains(strings.ToLower(h.ClassName), "join"):
			p.kind = pendingJoin
		case len(h.Labels1) >= 2 && len(h.Labels2) >= 2:
			p.kind = pendingCoordinate
		default:
			p.kind = pendingPairwise
		}
		p.slots1 = append([]string(nil), h.Labels1...)
		p.slots2 = append([]string(nil), h.Labels2...)
	default:
		return nil, fmt.Errorf("%w: unsupported handle %T", types.ErrCapabilityNotFound, capability.Handle)
	}

	p.attrs1 = defaultAttrs(s.data1, len(p.slots1))
	p.attrs2 = defaultAttrs(s.data2, len(p.slots2))

	s.pending = append(s.pending, p)
	return p, nil
}

// Commit materializes all pending links and atomically replaces the
// collection's link set with the staged links plus the new ones. On error
// the collection is left unchanged.
func (s *editorState) Commit() error {
	next := append([]engine.Link(nil), s.staged...)
	for _, p := range s.pending {
		ln, err := p.materialize()
		if err != nil {
			return err
		}
		next = append(next, ln)
	}
	if err := s.eng.SetLinks(next); err != nil {
		return err
	}
	s.staged = next
	s.pending = nil
	return nil
}

// pendingLink kinds.
type pendingKind int

const (
	pendingPairwise pendingKind = iota
	pendingJoin
	pendingCoordinate
	pendingFunction
)

// pendingLink is a staged link under construction.
type pendingLink struct {
	kind   pendingKind
	fn     engine.FunctionEntry
	helper engine.HelperEntry
	data1  *types.Dataset
	data2  *types.Dataset
	slots1 []string
	slots2 []string
	attrs1 []*types.Attribute
	attrs2 []*types.Attribute
}

func (p *pendingLink) Slots1() []string { return append([]string(nil), p.slots1...) }
func (p *pendingLink) Slots2() []string { return append([]string(nil), p.slots2...) }

func (p *pendingLink) SetAttr1(attr *types.Attribute) error {
	if attr == nil {
		return types.ErrAttributeOutOfRange
	}
	p.attrs1[0] = attr
	return nil
}

func (p *pendingLink) SetAttr2(attr *types.Attribute) error {
	if attr == nil {
		return types.ErrAttributeOutOfRange
	}
	p.attrs2[0] = attr
	return nil
}

func (p *pendingLink) SetSlot(name string, attr *types.Attribute) error {
	if attr == nil {
		return types.ErrAttributeOutOfRange
	}
	for i, n := range p.slots1 {
		if n == name {
			p.attrs1[i] = attr
			return nil
		}
	}
	for i, n := range p.slots2 {
		if n == name {
			p.attrs2[i] = attr
			return nil
		}
	}
	return fmt.Errorf("%w: %q", types.ErrSlotUnknown, name)
}

// materialize builds the concrete link for this pending state.
func (p *pendingLink) materialize() (engine.Link, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}

	switch p.kind {
	case pendingPairwise:
		return &pairwiseLink{
			id:    id,
			attr1: p.attrs1[0],
			attr2: p.attrs2[0],
			data1: p.data1,
			data2: p.data2,
		}, nil
	case pendingJoin:
		return &joinLink{
			id:    id,
			key1:  p.attrs1[0],
			key2:  p.attrs2[0],
			data1: p.data1,
			data2: p.data2,
		}, nil
	case pendingCoordinate:
		return &coordinateLink{
			id:          id,
			class:       p.helper.ClassName,
			description: p.helper.Description,
			tuple1:      append([]*types.Attribute(nil), p.attrs1...),
			tuple2:      append([]*types.Attribute(nil), p.attrs2...),
			labels1:     append([]string(nil), p.slots1...),
			labels2:     append([]string(nil), p.slots2...),
			data1:       p.data1,
			data2:       p.data2,
		}, nil
	case pendingFunction:
		return &functionLink{
			id:         id,
			name:       p.fn.Name,
			inputs:     append([]*types.Attribute(nil), p.attrs1...),
			output:     p.attrs2[0],
			invertible: p.fn.Invertible,
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown pending kind", types.ErrCapabilityNotFound)
}

// defaultAttrs populates n slots (minimum one) with the dataset's leading
// attributes, repeating the last attribute when the dataset is shorter.
func defaultAttrs(d *types.Dataset, n int) []*types.Attribute {
	if n < 1 {
		n = 1
	}
	attrs := make([]*types.Attribute, n)
	for i := range attrs {
		if i < len(d.Attributes) {
			attrs[i] = d.Attributes[i]
		} else {
			attrs[i] = d.Attributes[len(d.Attributes)-1]
		}
	}
	return attrs
}
