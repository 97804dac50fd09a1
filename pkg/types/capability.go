// Capability entries describe the registered ways to create a link.
package types

// Capability kinds. Functions produce exactly one output attribute; helpers
// produce a structured multi-attribute relation.
const (
	CapabilityFunction = "function"
	CapabilityHelper   = "helper"
)

// CategoryGeneral is the capability category that always sorts first and is
// guaranteed to contain an identity capability after a cache build.
const CategoryGeneral = "General"

// Capability is one registry entry of the link-capability catalog. Immutable
// once cached; built exactly once per process and queried read-only after.
type Capability struct {
	// Kind is CapabilityFunction or CapabilityHelper.
	Kind string

	// Category is the grouping label ("General" first, others sorted).
	Category string

	// Display is the name shown in menus.
	Display string

	// Description is an optional human-readable explanation.
	Description string

	// Handle is the opaque registry object this entry was built from. It is
	// handed back to the engine's editor to create a link of this kind and
	// is never inspected outside the engine boundary.
	Handle any
}
