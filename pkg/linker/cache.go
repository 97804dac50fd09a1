package linker

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// identityName is the registered name of the identity function. The cache
// guarantees exactly one identity capability in "General" after a build; it
// is the required fallback target for edits whose originating capability
// cannot be re-located.
const identityName = "identity"

// Cache is the once-built, immutable capability catalog. Registry queries
// may trigger lazy plugin loading in the engine, so Build runs them at most
// once per process; every accessor after that is a pure in-memory read.
type Cache struct {
	mu  sync.Mutex
	reg engine.Registry

	built bool
	err   error

	categories []string
	byCategory map[string][]types.Capability
	functions  map[string]engine.FunctionEntry
	helpers    []engine.HelperEntry
	identity   types.Capability
	hasIdent   bool
	diags      []string
}

// NewCache creates an unbuilt cache over the given registry.
func NewCache(reg engine.Registry) *Cache {
	return &Cache{reg: reg}
}

// Build queries the function and helper registries once and assembles the
// categorized catalog. Subsequent calls return the memoized result without
// touching the registry. A registry query failure is fatal to the cache and
// sticky; a failure to process one individual entry drops that entry,
// records a diagnostic, and continues.
func (c *Cache) Build() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.built || c.err != nil {
		return c.err
	}
	c.err = c.build()
	return c.err
}

// ForceRebuild discards the memoized catalog and builds again. Intended for
// tests and for sessions whose registry contents changed.
func (c *Cache) ForceRebuild() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.built = false
	c.err = nil
	c.diags = nil
	c.err = c.build()
	return c.err
}

func (c *Cache) build() error {
	functions, err := c.reg.Functions()
	if err != nil {
		return fmt.Errorf("%w: querying functions: %v", types.ErrRegistryUnavailable, err)
	}
	helpers, err := c.reg.Helpers()
	if err != nil {
		return fmt.Errorf("%w: querying helpers: %v", types.ErrRegistryUnavailable, err)
	}

	// Collect categories. Functions with more than one output are excluded
	// from the catalog outright: multi-output capability creation is out of
	// scope for the editor.
	seen := map[string]bool{}
	for _, f := range functions {
		if len(f.OutputLabels) != 1 {
			continue
		}
		seen[categoryOf(f.Category)] = true
	}
	for _, h := range helpers {
		seen[categoryOf(h.Category)] = true
	}
	seen[types.CategoryGeneral] = true

	var rest []string
	for cat := range seen {
		if cat != types.CategoryGeneral {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)
	categories := append([]string{types.CategoryGeneral}, rest...)

	byCategory := make(map[string][]types.Capability, len(categories))
	functionsByName := make(map[string]engine.FunctionEntry, len(functions))

	for _, cat := range categories {
		var entries []types.Capability
		for _, f := range functions {
			if len(f.OutputLabels) != 1 || categoryOf(f.Category) != cat {
				continue
			}
			display, err := functionDisplayName(f)
			if err != nil {
				c.diags = append(c.diags, fmt.Sprintf("dropped function entry in %q: %v", cat, err))
				continue
			}
			if strings.EqualFold(display, identityName) {
				// Appended to "General" exactly once below, regardless of
				// how many times (or in which casing) the registry lists it.
				continue
			}
			entries = append(entries, types.Capability{
				Kind:        types.CapabilityFunction,
				Category:    cat,
				Display:     display,
				Description: f.Info,
				Handle:      f,
			})
			functionsByName[f.Name] = f
		}
		for _, h := range helpers {
			if categoryOf(h.Category) != cat {
				continue
			}
			display, err := helperDisplayName(h)
			if err != nil {
				c.diags = append(c.diags, fmt.Sprintf("dropped helper entry in %q: %v", cat, err))
				continue
			}
			entries = append(entries, types.Capability{
				Kind:        types.CapabilityHelper,
				Category:    cat,
				Display:     display,
				Description: h.Description,
				Handle:      h,
			})
		}
		byCategory[cat] = entries
	}

	// Identity guarantee: locate the identity function in the registry and
	// place a single catalog entry for it in "General".
	c.hasIdent = false
	for _, f := range functions {
		if !strings.EqualFold(f.Name, identityName) || len(f.OutputLabels) != 1 {
			continue
		}
		info := f.Info
		if info == "" {
			info = "Identity link function"
		}
		ident := types.Capability{
			Kind:        types.CapabilityFunction,
			Category:    types.CategoryGeneral,
			Display:     identityName,
			Description: info,
			Handle:      f,
		}
		byCategory[types.CategoryGeneral] = append(byCategory[types.CategoryGeneral], ident)
		functionsByName[f.Name] = f
		c.identity = ident
		c.hasIdent = true
		break
	}

	c.categories = categories
	c.byCategory = byCategory
	c.functions = functionsByName
	c.helpers = append([]engine.HelperEntry(nil), helpers...)
	c.built = true
	return nil
}

// Categories returns the ordered category names. Empty before a successful
// build.
func (c *Cache) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.categories...)
}

// ByCategory returns the catalog as a category-to-entries mapping.
func (c *Cache) ByCategory() map[string][]types.Capability {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]types.Capability, len(c.byCategory))
	for cat, entries := range c.byCategory {
		out[cat] = append([]types.Capability(nil), entries...)
	}
	return out
}

// Find returns the ordered capabilities of one category. Pure read; safe on
// an interactive path.
func (c *Cache) Find(category string) []types.Capability {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]types.Capability(nil), c.byCategory[category]...)
}

// Identity returns the guaranteed identity capability, if the registry
// exposed one.
func (c *Cache) Identity() (types.Capability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity, c.hasIdent
}

// FunctionByName returns the catalog capability for the named function.
func (c *Cache) FunctionByName(name string) (types.Capability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.functions[name]
	if !ok {
		return types.Capability{}, false
	}
	display, err := functionDisplayName(f)
	if err != nil {
		display = f.Name
	}
	return types.Capability{
		Kind:        types.CapabilityFunction,
		Category:    categoryOf(f.Category),
		Display:     display,
		Description: f.Info,
		Handle:      f,
	}, true
}

// InputLabels returns the declared input slot names of the named function,
// or nil if the function is not in the catalog.
func (c *Cache) InputLabels(name string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.functions[name]
	if !ok {
		return nil
	}
	return append([]string(nil), f.InputLabels...)
}

// HelperByClass returns the catalog capability for the helper with the given
// class name.
func (c *Cache) HelperByClass(className string) (types.Capability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.helpers {
		if h.ClassName == className {
			return helperCapability(h), true
		}
	}
	return types.Capability{}, false
}

// HelperMatching returns the first helper whose class name satisfies the
// given predicate.
func (c *Cache) HelperMatching(match func(className string) bool) (types.Capability, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.helpers {
		if match(h.ClassName) {
			return helperCapability(h), true
		}
	}
	return types.Capability{}, false
}

// Diagnostics returns the per-entry drop messages recorded during the last
// build.
func (c *Cache) Diagnostics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.diags...)
}

func helperCapability(h engine.HelperEntry) types.Capability {
	display, err := helperDisplayName(h)
	if err != nil {
		display = h.ClassName
	}
	return types.Capability{
		Kind:        types.CapabilityHelper,
		Category:    categoryOf(h.Category),
		Display:     display,
		Description: h.Description,
		Handle:      h,
	}
}

// categoryOf normalizes an empty category to "General".
func categoryOf(category string) string {
	if category == "" {
		return types.CategoryGeneral
	}
	return category
}

// functionDisplayName resolves the menu name of a function entry. An entry
// with neither a display name nor a callable name is malformed.
func functionDisplayName(f engine.FunctionEntry) (string, error) {
	if f.Display != "" {
		return f.Display, nil
	}
	if f.Name != "" {
		return f.Name, nil
	}
	return "", fmt.Errorf("function entry has no display name")
}

// helperDisplayName resolves the menu name of a helper entry.
func helperDisplayName(h engine.HelperEntry) (string, error) {
	if h.Display != "" {
		return h.Display, nil
	}
	if h.ClassName != "" {
		return h.ClassName, nil
	}
	return "", fmt.Errorf("helper entry has no display name")
}
