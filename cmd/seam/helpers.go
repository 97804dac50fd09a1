// Shared helpers for seam CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// fail prints an error with a command prefix to stderr and exits.
func fail(code int, prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(code)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// datasetByLabel finds a session dataset by its display label.
func datasetByLabel(s *session, label string) (*types.Dataset, error) {
	d, ok := s.eng.DatasetByLabel(label)
	if !ok {
		var labels []string
		for _, d := range s.eng.Datasets() {
			labels = append(labels, d.Label)
		}
		return nil, fmt.Errorf("dataset %q not found (have: %s)", label, strings.Join(labels, ", "))
	}
	return d, nil
}

// attributeByLabel finds an attribute of a dataset by its display label.
func attributeByLabel(d *types.Dataset, label string) (*types.Attribute, error) {
	for _, a := range d.Attributes {
		if a.Label == label {
			return a, nil
		}
	}
	return nil, fmt.Errorf("attribute %q not found in dataset %q", label, d.Label)
}

// linkAt parses a positional link index and returns the link at that
// position in the collection.
func linkAt(s *session, arg string) (engine.Link, int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid link index %q", arg)
	}
	links := s.eng.Collection().Links()
	if index < 0 || index >= len(links) {
		return nil, 0, fmt.Errorf("link index %d out of range (have %d links)", index, len(links))
	}
	return links[index], index, nil
}

// findCapability resolves a capability by function name, helper class name,
// or display label.
func findCapability(s *session, name string) (types.Capability, error) {
	cache := s.lnk.Cache()
	if cap, ok := cache.FunctionByName(name); ok {
		return cap, nil
	}
	if cap, ok := cache.HelperByClass(name); ok {
		return cap, nil
	}
	for _, category := range cache.Categories() {
		for _, cap := range cache.Find(category) {
			if cap.Display == name {
				return cap, nil
			}
		}
	}
	return types.Capability{}, fmt.Errorf("capability %q: %w", name, types.ErrCapabilityNotFound)
}
