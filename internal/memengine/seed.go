package memengine

import (
	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// DefaultFunctions returns the stock transformation functions. The
// vector_components entry has two outputs and therefore never appears in
// the capability catalog; it exists so registry consumers handle the
// exclusion.
func DefaultFunctions() []engine.FunctionEntry {
	return []engine.FunctionEntry{
		{
			Name:         "identity",
			Category:     types.CategoryGeneral,
			Info:         "Link attributes with identical values",
			InputLabels:  []string{"x"},
			OutputLabels: []string{"y"},
			Invertible:   true,
		},
		{
			Name:         "lengths_to_volume",
			Display:      "Convert lengths to volume",
			Category:     types.CategoryGeneral,
			Info:         "Convert linear measurements to a volume",
			InputLabels:  []string{"width", "height", "depth"},
			OutputLabels: []string{"volume"},
		},
		{
			Name:         "radians_to_degrees",
			Category:     types.CategoryGeneral,
			Info:         "Convert between radians and degrees",
			InputLabels:  []string{"rad"},
			OutputLabels: []string{"deg"},
			Invertible:   true,
		},
		{
			Name:         "vector_components",
			Category:     types.CategoryGeneral,
			Info:         "Decompose a vector into components",
			InputLabels:  []string{"v"},
			OutputLabels: []string{"x", "y"},
		},
	}
}

// DefaultHelpers returns the stock link helpers.
func DefaultHelpers() []engine.HelperEntry {
	return []engine.HelperEntry{
		{
			ClassName:   "pairwise",
			Display:     "Link identically",
			Category:    types.CategoryGeneral,
			Description: "Identical attribute pair between two datasets",
		},
		{
			ClassName:   "JoinOnKey",
			Display:     "Join on ID",
			Category:    "Join",
			Description: "Database-style join on matching key values",
		},
		{
			ClassName:   "ICRS_to_Galactic",
			Display:     "ICRS <-> Galactic",
			Category:    "Astronomy",
			Description: "ICRS <-> Galactic",
			Labels1:     []string{"ra", "dec"},
			Labels2:     []string{"l", "b"},
		},
		{
			ClassName:   "Galactic_to_FK5",
			Display:     "Galactic <-> FK5",
			Category:    "Astronomy",
			Description: "Galactic <-> FK5 (J2000)",
			Labels1:     []string{"l", "b"},
			Labels2:     []string{"ra", "dec"},
		},
	}
}
