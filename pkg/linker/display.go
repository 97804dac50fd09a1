package linker

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/seam/pkg/engine"
)

// maxRawDisplayLen bounds how long a link's raw string form may be before
// the generic placeholder is used instead.
const maxRawDisplayLen = 100

// DisplayString produces the one-line list representation of a link,
// independent of whether it is editable. Dispatch mirrors the classification
// priority: pairwise, join, coordinate helper, function, generic fallback.
func DisplayString(link engine.Link) string {
	if link == nil {
		return ""
	}

	if pw, ok := link.(engine.PairwiseLink); ok {
		attr1, attr2 := pw.Pair()
		return fmt.Sprintf("%s <-> %s", attr1.DisplayLabel(), attr2.DisplayLabel())
	}

	if jl, ok := link.(engine.JoinerLink); ok {
		if s, ok := link.(fmt.Stringer); ok {
			return s.String()
		}
		key1, key2 := jl.JoinKeys()
		return fmt.Sprintf("join(%s == %s)", key1.DisplayLabel(), key2.DisplayLabel())
	}

	if _, ok := link.(engine.TupleLink); ok {
		if d, ok := link.(engine.Describer); ok && d.Description() != "" {
			return d.Description()
		}
		return fmt.Sprintf("Coordinate Transform (%s)", link.Kind())
	}

	if fl, ok := link.(engine.FunctionLink); ok {
		if s := functionDisplay(fl); s != "" {
			return s
		}
	}

	// Unrecognized: a bounded string form, unless it looks like a raw
	// object reference.
	if d, ok := link.(engine.Describer); ok && d.Description() != "" {
		return d.Description()
	}
	raw := fmt.Sprintf("%v", link)
	if len(raw) > 0 && len(raw) < maxRawDisplayLen && !strings.Contains(raw, "0x") {
		return raw
	}
	return fmt.Sprintf("Advanced Link (%s)", link.Kind())
}

func functionDisplay(fl engine.FunctionLink) string {
	inputs := fl.Inputs()
	output := fl.Output()
	if len(inputs) == 0 || output == nil {
		return ""
	}

	name := fl.FunctionName()
	if name == "" {
		name = "function"
	}

	if len(inputs) == 1 {
		from := inputs[0].DisplayLabel()
		to := output.DisplayLabel()
		switch {
		case name == identityName:
			// Identity is visually a pairwise link.
			return fmt.Sprintf("%s <-> %s", from, to)
		case fl.Invertible():
			return fmt.Sprintf("%s(%s <-> %s)", name, from, to)
		default:
			return fmt.Sprintf("%s(%s -> %s)", name, from, to)
		}
	}

	labels := make([]string, 0, len(inputs))
	for _, in := range inputs {
		labels = append(labels, in.DisplayLabel())
	}
	return fmt.Sprintf("%s(%s -> %s)", name, strings.Join(labels, ","), output.DisplayLabel())
}
