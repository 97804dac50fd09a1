package linker

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// Dataset sides of a link, as passed to ApplyEdit.
const (
	Side1 = 1
	Side2 = 2
)

// ApplyEdit applies a single-attribute change to an existing link by
// reconstructing a replacement of the same kind and committing the whole
// link set atomically. Engine links are immutable once created, so editing
// is always replace, never in-place mutation.
//
// side selects the dataset (Side1 or Side2), slot the editable position
// within that side (0 for single-slot shapes), and newAttrIndex the
// replacement attribute's position in that dataset's attribute list.
//
// The reconstructed link is appended by the engine, so its position is not
// stable across the edit; the new position is returned explicitly so callers
// can re-select it.
func (l *Linker) ApplyEdit(link engine.Link, side, slot, newAttrIndex int) (int, error) {
	info, ok := Classify(link)
	if !ok {
		return -1, types.ErrNoDescriptor
	}
	if side != Side1 && side != Side2 {
		return -1, fmt.Errorf("%w: side %d", types.ErrSlotOutOfRange, side)
	}

	// Capability re-location reads the cache; a build failure here is not
	// fatal because the fallback chain ends at direct pair creation.
	_ = l.cache.Build()

	target := info.Data1
	if side == Side2 {
		target = info.Data2
	}
	newAttr := target.AttributeAt(newAttrIndex)
	if newAttr == nil {
		return -1, fmt.Errorf("%w: index %d in dataset %q", types.ErrAttributeOutOfRange, newAttrIndex, target.Label)
	}

	tuple1, tuple2, err := editedEndpoints(info, side, slot, newAttr)
	if err != nil {
		return -1, err
	}

	coll := l.eng.Collection()
	before := coll.Links()
	idx := indexByID(before, link.ID())
	if idx < 0 {
		return -1, types.ErrLinkNotFound
	}

	// Joins must leave the collection before the replacement is built: the
	// engine's equality rule treats similarly-parameterized joins as
	// duplicates and would reject the new one.
	preRemoved := false
	if info.Shape == types.ShapeJoin {
		if err := coll.RemoveAt(idx); err != nil {
			return -1, err
		}
		preRemoved = true
	}

	ed := l.eng.NewEditor()
	ed.SetDatasets(info.Data1, info.Data2)
	if !preRemoved {
		if _, err := ed.Pop(idx); err != nil {
			return -1, err
		}
	}

	capability, relocated := l.relocate(info)
	if !relocated {
		// Fallback pair: the changed attribute on its side, the first
		// original attribute on the other.
		fall1, fall2 := tuple1[0], tuple2[0]
		if side == Side1 {
			fall1 = newAttr
		} else {
			fall2 = newAttr
		}
		if ident, ok := l.cache.Identity(); ok {
			// Identity takes a single attribute pair; multi-slot shapes
			// collapse to it.
			capability = ident
			tuple1 = []*types.Attribute{fall1}
			tuple2 = []*types.Attribute{fall2}
		} else {
			// Lowest-level fallback: commit the removal, then create the
			// pair directly.
			if err := ed.Commit(); err != nil {
				return -1, l.restore(before, preRemoved, err)
			}
			if err := l.eng.AddPair(info.Data1, fall1, info.Data2, fall2); err != nil {
				return -1, l.restore(before, true, err)
			}
			return len(coll.Links()) - 1, nil
		}
	}

	pending, err := ed.NewLink(capability)
	if err != nil {
		return -1, l.restore(before, preRemoved, err)
	}
	if err := populate(pending, tuple1, tuple2); err != nil {
		return -1, l.restore(before, preRemoved, err)
	}
	if err := ed.Commit(); err != nil {
		return -1, l.restore(before, preRemoved, fmt.Errorf("%w: %v", types.ErrEditRejected, err))
	}

	return len(coll.Links()) - 1, nil
}

// Remove deletes a link from the collection through the transactional
// editor, matching by stable ID.
func (l *Linker) Remove(link engine.Link) error {
	if link == nil {
		return types.ErrLinkNotFound
	}
	idx := indexByID(l.eng.Collection().Links(), link.ID())
	if idx < 0 {
		return types.ErrLinkNotFound
	}
	ed := l.eng.NewEditor()
	if _, err := ed.Pop(idx); err != nil {
		return err
	}
	return ed.Commit()
}

// editedEndpoints resolves the per-side attribute lists after the edit: all
// slots keep their original backing attribute except the changed one.
func editedEndpoints(info *types.LinkInfo, side, slot int, newAttr *types.Attribute) ([]*types.Attribute, []*types.Attribute, error) {
	var tuple1, tuple2 []*types.Attribute

	switch info.Shape {
	case types.ShapeCoordinate:
		tuple1 = append([]*types.Attribute(nil), info.Tuple1...)
		tuple2 = append([]*types.Attribute(nil), info.Tuple2...)
	case types.ShapeFunction:
		tuple1 = append([]*types.Attribute(nil), info.Inputs...)
		tuple2 = []*types.Attribute{info.Attr2}
	default:
		tuple1 = []*types.Attribute{info.Attr1}
		tuple2 = []*types.Attribute{info.Attr2}
	}

	if side == Side1 {
		if slot < 0 || slot >= len(tuple1) {
			return nil, nil, fmt.Errorf("%w: slot %d of %d", types.ErrSlotOutOfRange, slot, len(tuple1))
		}
		tuple1[slot] = newAttr
	} else {
		if slot < 0 || slot >= len(tuple2) {
			return nil, nil, fmt.Errorf("%w: slot %d of %d", types.ErrSlotOutOfRange, slot, len(tuple2))
		}
		tuple2[slot] = newAttr
	}
	return tuple1, tuple2, nil
}

// relocate finds the capability that could have produced the link, so the
// edit preserves its kind. Priority: registered function name, coordinate
// helper by class or function-name pattern, join helper by name substring,
// pairwise helper by exact name.
func (l *Linker) relocate(info *types.LinkInfo) (types.Capability, bool) {
	if info.FunctionName != "" {
		if c, ok := l.cache.FunctionByName(info.FunctionName); ok {
			return c, true
		}
		// Coordinate transforms may surface function names of the form
		// "Class.direction"; match the helper by the class prefix.
		if base, _, found := strings.Cut(info.FunctionName, "."); found {
			if c, ok := l.cache.HelperByClass(base); ok {
				return c, true
			}
		}
		return types.Capability{}, false
	}

	switch info.Shape {
	case types.ShapeCoordinate:
		if c, ok := l.cache.HelperByClass(info.Kind); ok {
			return c, true
		}
		kind := strings.ToLower(info.Kind)
		return l.cache.HelperMatching(func(className string) bool {
			lower := strings.ToLower(className)
			return strings.Contains(kind, lower) || strings.Contains(lower, kind)
		})
	case types.ShapeJoin:
		return l.cache.HelperMatching(func(className string) bool {
			return strings.Contains(strings.ToLower(className), "join")
		})
	case types.ShapePairwise:
		return l.cache.HelperByClass(info.Kind)
	}
	return types.Capability{}, false
}

// populate assigns the endpoint attributes to a pending link, by declared
// slot name when the capability has named slots and by direct endpoint
// setters otherwise.
func populate(pending engine.Pending, tuple1, tuple2 []*types.Attribute) error {
	if names := pending.Slots1(); len(names) > 0 {
		for i, name := range names {
			if i >= len(tuple1) || tuple1[i] == nil {
				continue
			}
			if err := pending.SetSlot(name, tuple1[i]); err != nil {
				return err
			}
		}
	} else if len(tuple1) > 0 && tuple1[0] != nil {
		if err := pending.SetAttr1(tuple1[0]); err != nil {
			return err
		}
	}

	if names := pending.Slots2(); len(names) > 0 {
		for i, name := range names {
			if i >= len(tuple2) || tuple2[i] == nil {
				continue
			}
			if err := pending.SetSlot(name, tuple2[i]); err != nil {
				return err
			}
		}
	} else if len(tuple2) > 0 && tuple2[0] != nil {
		if err := pending.SetAttr2(tuple2[0]); err != nil {
			return err
		}
	}
	return nil
}

// restore puts the collection back to its pre-edit set after a failed edit
// that had already mutated it. The original error always wins; a failed
// restore is reported alongside it.
func (l *Linker) restore(before []engine.Link, mutated bool, cause error) error {
	if !mutated {
		return cause
	}
	if err := l.eng.Collection().SetLinks(before); err != nil {
		return fmt.Errorf("%v (restore failed: %v)", cause, err)
	}
	return cause
}

// indexByID locates a link in a snapshot by its stable identity key.
func indexByID(links []engine.Link, id string) int {
	for i, ln := range links {
		if ln != nil && ln.ID() == id {
			return i
		}
	}
	return -1
}
