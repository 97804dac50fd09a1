package types

// Option is one dropdown entry: an attribute index paired with its label.
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// SlotDescriptor describes one independently editable input or coordinate
// position of a multi-slot link.
type SlotDescriptor struct {
	// Name is the slot name (engine-provided label, or a synthesized
	// coord{n}_{i} / param_{i} name).
	Name string `json:"name"`

	// Selected is the index of the slot's current attribute within the
	// dataset's attribute list, 0 if the attribute could not be located.
	Selected int `json:"selected"`

	// Attribute is the slot's current backing attribute.
	Attribute *Attribute `json:"-"`

	// Label is the backing attribute's display label.
	Label string `json:"label"`
}

// EditDescriptor is the ephemeral view model built from a link for the
// details panel. Option lists always enumerate every attribute of the
// respective dataset; selections default to index 0 when the backing
// attribute has gone stale so editing remains possible.
type EditDescriptor struct {
	// Attr1Options and Attr2Options enumerate all attributes of each
	// dataset as dropdown options.
	Attr1Options []Option `json:"attr1_options"`
	Attr2Options []Option `json:"attr2_options"`

	// Attr1Selected and Attr2Selected are the current selections for
	// single-slot shapes. Unused (zero) for multi-slot shapes.
	Attr1Selected int `json:"attr1_selected"`
	Attr2Selected int `json:"attr2_selected"`

	// Attr1Label and Attr2Label are the display labels for each side.
	Attr1Label string `json:"attr1_label"`
	Attr2Label string `json:"attr2_label"`

	// MultiParam is set for links with more than one editable slot on a
	// side; CoordinatePair additionally marks symmetric N-to-N transforms.
	MultiParam     bool `json:"is_multi_param"`
	CoordinatePair bool `json:"is_coordinate_pair"`

	// Params holds the per-input slots of an N-to-1 function link.
	Params []SlotDescriptor `json:"params,omitempty"`

	// Coords1 and Coords2 hold the per-side slots of a coordinate link.
	Coords1 []SlotDescriptor `json:"coords1,omitempty"`
	Coords2 []SlotDescriptor `json:"coords2,omitempty"`

	// FunctionName is set for function links, CoordinateKind for
	// coordinate links.
	FunctionName   string `json:"function_name,omitempty"`
	CoordinateKind string `json:"coordinate_kind,omitempty"`
}
