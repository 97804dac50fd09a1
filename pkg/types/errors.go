package types

import "errors"

// Registry and cache errors.
var (
	// ErrRegistryUnavailable wraps a failure to query the engine's
	// capability registries. Fatal at cache build time.
	ErrRegistryUnavailable = errors.New("capability registry unavailable")
)

// Classification and edit errors.
var (
	// ErrNoDescriptor means the link matched no recognized shape, or a
	// required endpoint could not be resolved.
	ErrNoDescriptor = errors.New("no descriptor available")

	// ErrLinkNotFound means the link is not present in the engine's
	// collection (it may have been removed or replaced upstream).
	ErrLinkNotFound = errors.New("link not found in collection")

	// ErrCapabilityNotFound means no originating capability could be
	// re-located for a link being edited.
	ErrCapabilityNotFound = errors.New("capability not found")

	// ErrEditRejected wraps an engine-side rejection of a reconstructed
	// link; the collection is left at its pre-edit state.
	ErrEditRejected = errors.New("edit rejected by engine")

	// ErrSlotOutOfRange means the slot index does not exist on the link.
	ErrSlotOutOfRange = errors.New("slot index out of range")

	// ErrSlotUnknown means a named slot does not exist on a pending link.
	ErrSlotUnknown = errors.New("unknown slot name")

	// ErrAttributeOutOfRange means the attribute index does not exist in
	// the target dataset.
	ErrAttributeOutOfRange = errors.New("attribute index out of range")

	// ErrDuplicateJoin means the link set would contain two joins between
	// the same dataset pair with the same key parameters.
	ErrDuplicateJoin = errors.New("duplicate join between dataset pair")
)

// Collection errors.
var (
	// ErrIndexOutOfRange means a positional link reference is stale or
	// invalid for the current collection.
	ErrIndexOutOfRange = errors.New("link index out of range")

	// ErrDatasetNotFound means a dataset reference could not be resolved.
	ErrDatasetNotFound = errors.New("dataset not found")
)
