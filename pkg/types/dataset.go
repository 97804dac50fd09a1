package types

// Attribute is one named column of a Dataset. Attributes carry a stable
// identity key so that links can survive wrapper-object churn in the engine;
// all matching in the editor is by AttributeID, never by pointer.
type Attribute struct {
	// AttributeID is a UUID v7, generated on creation.
	AttributeID string

	// Label is the human-readable column name (e.g. "ra", "dec").
	Label string

	// Dataset is the owning dataset. May be nil for detached attributes;
	// classification treats a missing parent as an unrecognizable link.
	Dataset *Dataset
}

// DisplayLabel returns the attribute label, or a placeholder for nil
// attributes so display formatting never dereferences nil.
func (a *Attribute) DisplayLabel() string {
	if a == nil {
		return "?"
	}
	return a.Label
}

// Dataset is an ordered collection of attributes with a display label.
type Dataset struct {
	// DatasetID is a UUID v7, generated on creation.
	DatasetID string

	// Label is the human-readable dataset name.
	Label string

	// Attributes is the ordered attribute list. Dropdown option lists
	// enumerate this slice in full, regardless of which attributes are
	// currently linked.
	Attributes []*Attribute
}

// AttributeIndex returns the position of the attribute with the given ID,
// or -1 if it is not present in the dataset.
func (d *Dataset) AttributeIndex(attributeID string) int {
	if d == nil {
		return -1
	}
	for i, a := range d.Attributes {
		if a != nil && a.AttributeID == attributeID {
			return i
		}
	}
	return -1
}

// AttributeAt returns the attribute at the given index, or nil if the index
// is out of range.
func (d *Dataset) AttributeAt(index int) *Attribute {
	if d == nil || index < 0 || index >= len(d.Attributes) {
		return nil
	}
	return d.Attributes[index]
}
