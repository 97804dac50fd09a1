// Package types defines the entity types of the seam link editor: datasets
// and their attributes, link capabilities, classified link shapes, edit
// descriptors, and standard error types.
// See docs/ARCHITECTURE.md § Link Model.
package types
