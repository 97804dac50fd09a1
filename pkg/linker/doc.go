// Package linker implements the link-editor core: the once-built capability
// catalog, link classification into edit descriptors, one-line display
// formatting, and the atomic edit protocol that replaces a link with a
// reconstructed one of the same kind.
// See docs/ARCHITECTURE.md § Editor Core.
package linker
