// Link snapshot records: the portable form of the engine's state used by
// the session store. Export and Import round-trip the datasets and the link
// set by identity key.
package memengine

import (
	"fmt"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// Link shapes as persisted.
const (
	RecordPairwise   = "pairwise"
	RecordJoin       = "join"
	RecordCoordinate = "coordinate"
	RecordFunction   = "function"
)

// LinkRecord is the serializable form of one link. Attribute references are
// by AttributeID; the record carries enough to reconstruct the concrete
// link against re-hydrated datasets.
type LinkRecord struct {
	LinkID       string   `json:"link_id"`
	Shape        string   `json:"shape"`
	Kind         string   `json:"kind"`
	Description  string   `json:"description,omitempty"`
	FunctionName string   `json:"function_name,omitempty"`
	Invertible   bool     `json:"invertible,omitempty"`
	Dataset1ID   string   `json:"dataset1_id"`
	Dataset2ID   string   `json:"dataset2_id"`
	Attrs1       []string `json:"attrs1"`
	Attrs2       []string `json:"attrs2"`
	Labels1      []string `json:"labels1,omitempty"`
	Labels2      []string `json:"labels2,omitempty"`
}

// Export snapshots the engine's datasets and link set.
func (e *Engine) Export() ([]*types.Dataset, []LinkRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	records := make([]LinkRecord, 0, len(e.links))
	for _, ln := range e.links {
		rec, err := recordOf(ln)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, rec)
	}
	return append([]*types.Dataset(nil), e.datasets...), records, nil
}

// Import replaces the engine's datasets and link set from a snapshot.
func (e *Engine) Import(datasets []*types.Dataset, records []LinkRecord) error {
	byDataset := make(map[string]*types.Dataset, len(datasets))
	byAttr := make(map[string]*types.Attribute)
	for _, d := range datasets {
		byDataset[d.DatasetID] = d
		for _, a := range d.Attributes {
			a.Dataset = d
			byAttr[a.AttributeID] = a
		}
	}

	links := make([]engine.Link, 0, len(records))
	for _, rec := range records {
		ln, err := linkOf(rec, byDataset, byAttr)
		if err != nil {
			return err
		}
		links = append(links, ln)
	}

	e.mu.Lock()
	e.datasets = append([]*types.Dataset(nil), datasets...)
	e.mu.Unlock()
	return e.SetLinks(links)
}

func recordOf(ln engine.Link) (LinkRecord, error) {
	switch l := ln.(type) {
	case *pairwiseLink:
		return LinkRecord{
			LinkID:     l.id,
			Shape:      RecordPairwise,
			Kind:       l.Kind(),
			Dataset1ID: l.data1.DatasetID,
			Dataset2ID: l.data2.DatasetID,
			Attrs1:     []string{l.attr1.AttributeID},
			Attrs2:     []string{l.attr2.AttributeID},
		}, nil
	case *joinLink:
		return LinkRecord{
			LinkID:     l.id,
			Shape:      RecordJoin,
			Kind:       l.Kind(),
			Dataset1ID: l.data1.DatasetID,
			Dataset2ID: l.data2.DatasetID,
			Attrs1:     []string{l.key1.AttributeID},
			Attrs2:     []string{l.key2.AttributeID},
		}, nil
	case *coordinateLink:
		return LinkRecord{
			LinkID:      l.id,
			Shape:       RecordCoordinate,
			Kind:        l.class,
			Description: l.description,
			Dataset1ID:  l.data1.DatasetID,
			Dataset2ID:  l.data2.DatasetID,
			Attrs1:      attrIDs(l.tuple1),
			Attrs2:      attrIDs(l.tuple2),
			Labels1:     append([]string(nil), l.labels1...),
			Labels2:     append([]string(nil), l.labels2...),
		}, nil
	case *functionLink:
		return LinkRecord{
			LinkID:       l.id,
			Shape:        RecordFunction,
			Kind:         l.Kind(),
			FunctionName: l.name,
			Invertible:   l.invertible,
			Dataset1ID:   datasetIDOf(l.inputs[0]),
			Dataset2ID:   datasetIDOf(l.output),
			Attrs1:       attrIDs(l.inputs),
			Attrs2:       []string{l.output.AttributeID},
		}, nil
	}
	return LinkRecord{}, fmt.Errorf("exporting link %q: unknown concrete type %T", ln.ID(), ln)
}

func linkOf(rec LinkRecord, byDataset map[string]*types.Dataset, byAttr map[string]*types.Attribute) (engine.Link, error) {
	data1, ok1 := byDataset[rec.Dataset1ID]
	data2, ok2 := byDataset[rec.Dataset2ID]
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("importing link %q: %w", rec.LinkID, types.ErrDatasetNotFound)
	}
	attrs1, err := resolveAttrs(rec.Attrs1, byAttr)
	if err != nil {
		return nil, fmt.Errorf("importing link %q: %w", rec.LinkID, err)
	}
	attrs2, err := resolveAttrs(rec.Attrs2, byAttr)
	if err != nil {
		return nil, fmt.Errorf("importing link %q: %w", rec.LinkID, err)
	}
	if len(attrs1) == 0 || len(attrs2) == 0 {
		return nil, fmt.Errorf("importing link %q: empty endpoints", rec.LinkID)
	}

	switch rec.Shape {
	case RecordPairwise:
		return &pairwiseLink{id: rec.LinkID, attr1: attrs1[0], attr2: attrs2[0], data1: data1, data2: data2}, nil
	case RecordJoin:
		return &joinLink{id: rec.LinkID, key1: attrs1[0], key2: attrs2[0], data1: data1, data2: data2}, nil
	case RecordCoordinate:
		return &coordinateLink{
			id:          rec.LinkID,
			class:       rec.Kind,
			description: rec.Description,
			tuple1:      attrs1,
			tuple2:      attrs2,
			labels1:     append([]string(nil), rec.Labels1...),
			labels2:     append([]string(nil), rec.Labels2...),
			data1:       data1,
			data2:       data2,
		}, nil
	case RecordFunction:
		return &functionLink{
			id:         rec.LinkID,
			name:       rec.FunctionName,
			inputs:     attrs1,
			output:     attrs2[0],
			invertible: rec.Invertible,
		}, nil
	}
	return nil, fmt.Errorf("importing link %q: unknown shape %q", rec.LinkID, rec.Shape)
}

func attrIDs(attrs []*types.Attribute) []string {
	ids := make([]string, 0, len(attrs))
	for _, a := range attrs {
		ids = append(ids, a.AttributeID)
	}
	return ids
}

func resolveAttrs(ids []string, byAttr map[string]*types.Attribute) ([]*types.Attribute, error) {
	attrs := make([]*types.Attribute, 0, len(ids))
	for _, id := range ids {
		a, ok := byAttr[id]
		if !ok {
			return nil, fmt.Errorf("attribute %q not found", id)
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func datasetIDOf(a *types.Attribute) string {
	if a == nil || a.Dataset == nil {
		return ""
	}
	return a.Dataset.DatasetID
}
