// Package seam holds module-level metadata shared by the CLI and library.
package seam

// Version is the seam release version.
const Version = "v0.1.0"
