package linker

import (
	"fmt"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// Classify probes an opaque engine link once and resolves it into the closed
// LinkInfo union. The ordered tests matter: shapes overlap in the facets
// they expose, so the most specific tests run first. A tuple of size >= 2 on
// both sides is a coordinate transform and must be recognized before the
// join facet, because join links may also expose single-element tuples.
//
// Returns false for links matching no recognized shape or missing a required
// endpoint; callers degrade to an empty details panel.
func Classify(link engine.Link) (*types.LinkInfo, bool) {
	if link == nil {
		return nil, false
	}

	// 1. Simple pairwise: direct two-endpoint pair with dataset refs.
	if pw, ok := link.(engine.PairwiseLink); ok {
		attr1, attr2 := pw.Pair()
		data1, data2 := pw.PairDatasets()
		if attr1 == nil || attr2 == nil || data1 == nil || data2 == nil {
			return nil, false
		}
		return &types.LinkInfo{
			Shape: types.ShapePairwise,
			Kind:  link.Kind(),
			Data1: data1,
			Data2: data2,
			Attr1: attr1,
			Attr2: attr2,
		}, true
	}

	// 2. Coordinate transform: symmetric tuples of size >= 2.
	if tl, ok := link.(engine.TupleLink); ok {
		tuple1, tuple2 := tl.Tuple1(), tl.Tuple2()
		data1, data2 := tl.TupleDatasets()
		if data1 != nil && data2 != nil && len(tuple1) >= 2 && len(tuple2) >= 2 {
			return &types.LinkInfo{
				Shape:   types.ShapeCoordinate,
				Kind:    link.Kind(),
				Data1:   data1,
				Data2:   data2,
				Attr1:   tuple1[0],
				Attr2:   tuple2[0],
				Tuple1:  tuple1,
				Tuple2:  tuple2,
				Labels1: tl.TupleLabels1(),
				Labels2: tl.TupleLabels2(),
			}, true
		}
	}

	// 3. Join: single key attribute on each side.
	if jl, ok := link.(engine.JoinerLink); ok {
		key1, key2 := jl.JoinKeys()
		data1, data2 := jl.JoinDatasets()
		if key1 == nil || key2 == nil || data1 == nil || data2 == nil {
			return nil, false
		}
		return &types.LinkInfo{
			Shape: types.ShapeJoin,
			Kind:  link.Kind(),
			Data1: data1,
			Data2: data2,
			Attr1: key1,
			Attr2: key2,
		}, true
	}

	// 3b. Single-slot tuple helper that is not a join: edited as a simple
	// pair but keeps its coordinate kind for display and re-location.
	if tl, ok := link.(engine.TupleLink); ok {
		tuple1, tuple2 := tl.Tuple1(), tl.Tuple2()
		data1, data2 := tl.TupleDatasets()
		if data1 != nil && data2 != nil && len(tuple1) == 1 && len(tuple2) == 1 {
			return &types.LinkInfo{
				Shape:   types.ShapeCoordinate,
				Kind:    link.Kind(),
				Data1:   data1,
				Data2:   data2,
				Attr1:   tuple1[0],
				Attr2:   tuple2[0],
				Tuple1:  tuple1,
				Tuple2:  tuple2,
				Labels1: tl.TupleLabels1(),
				Labels2: tl.TupleLabels2(),
			}, true
		}
		return nil, false
	}

	// 4. N-to-1 function: generic input/output attribute references.
	if fl, ok := link.(engine.FunctionLink); ok {
		inputs := fl.Inputs()
		output := fl.Output()
		if len(inputs) == 0 || inputs[0] == nil || output == nil {
			return nil, false
		}
		data1 := inputs[0].Dataset
		data2 := output.Dataset
		if data1 == nil || data2 == nil {
			return nil, false
		}
		return &types.LinkInfo{
			Shape:        types.ShapeFunction,
			Kind:         link.Kind(),
			Data1:        data1,
			Data2:        data2,
			Attr1:        inputs[0],
			Attr2:        output,
			Inputs:       inputs,
			FunctionName: fl.FunctionName(),
			Invertible:   fl.Invertible(),
		}, true
	}

	return nil, false
}

// Describe builds a Link Edit Descriptor for the given link, or reports
// false when the link is unrecognized: the details panel shows a neutral
// state rather than failing.
func (l *Linker) Describe(link engine.Link) (*types.EditDescriptor, bool) {
	info, ok := Classify(link)
	if !ok {
		return nil, false
	}

	// Slot names for function links come from the capability's declared
	// input labels. A cache build failure only degrades the names to the
	// synthesized param_{i} form.
	_ = l.cache.Build()

	opts1 := optionsFor(info.Data1)
	opts2 := optionsFor(info.Data2)

	switch {
	case info.Shape == types.ShapeCoordinate && len(info.Tuple1) >= 2 && len(info.Tuple2) >= 2:
		return &types.EditDescriptor{
			Attr1Options:   opts1,
			Attr2Options:   opts2,
			Attr1Label:     fmt.Sprintf("Dataset 1 coordinates (%s)", info.Kind),
			Attr2Label:     fmt.Sprintf("Dataset 2 coordinates (%s)", info.Kind),
			MultiParam:     true,
			CoordinatePair: true,
			Coords1:        slotsFor(info.Tuple1, info.Labels1, "coord1", info.Data1),
			Coords2:        slotsFor(info.Tuple2, info.Labels2, "coord2", info.Data2),
			CoordinateKind: info.Kind,
		}, true

	case info.MultiParam():
		name := info.FunctionName
		if name == "" {
			name = "function"
		}
		return &types.EditDescriptor{
			Attr1Options:  opts1,
			Attr2Options:  opts2,
			Attr2Selected: selectionIndex(info.Data2, info.Attr2),
			Attr1Label:    fmt.Sprintf("%s parameters", name),
			Attr2Label:    info.Attr2.DisplayLabel(),
			MultiParam:    true,
			Params:        slotsFor(info.Inputs, l.cache.InputLabels(info.FunctionName), "param", info.Data1),
			FunctionName:  name,
		}, true

	default:
		return &types.EditDescriptor{
			Attr1Options:  opts1,
			Attr2Options:  opts2,
			Attr1Selected: selectionIndex(info.Data1, info.Attr1),
			Attr2Selected: selectionIndex(info.Data2, info.Attr2),
			Attr1Label:    info.Attr1.DisplayLabel(),
			Attr2Label:    info.Attr2.DisplayLabel(),
			FunctionName:  info.FunctionName,
		}, true
	}
}

// optionsFor enumerates all attributes of a dataset as dropdown options,
// regardless of which are currently linked.
func optionsFor(d *types.Dataset) []types.Option {
	if d == nil {
		return nil
	}
	opts := make([]types.Option, 0, len(d.Attributes))
	for i, a := range d.Attributes {
		opts = append(opts, types.Option{Label: a.DisplayLabel(), Value: i})
	}
	return opts
}

// slotsFor builds one slot descriptor per attribute, naming each from the
// engine-provided labels or a synthesized "<prefix>_{i}" fallback.
func slotsFor(attrs []*types.Attribute, labels []string, prefix string, d *types.Dataset) []types.SlotDescriptor {
	slots := make([]types.SlotDescriptor, 0, len(attrs))
	for i, a := range attrs {
		name := ""
		if i < len(labels) {
			name = labels[i]
		}
		if name == "" {
			name = fmt.Sprintf("%s_%d", prefix, i+1)
		}
		slots = append(slots, types.SlotDescriptor{
			Name:      name,
			Selected:  selectionIndex(d, a),
			Attribute: a,
			Label:     a.DisplayLabel(),
		})
	}
	return slots
}

// selectionIndex locates an attribute in its dataset's current attribute
// list. Stale references default to index 0 so editing remains possible.
func selectionIndex(d *types.Dataset, a *types.Attribute) int {
	if d == nil || a == nil {
		return 0
	}
	if idx := d.AttributeIndex(a.AttributeID); idx >= 0 {
		return idx
	}
	return 0
}
