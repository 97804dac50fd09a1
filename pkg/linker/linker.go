package linker

import (
	"github.com/mesh-intelligence/seam/pkg/engine"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// Linker is the exposed editor surface over one engine session. It holds no
// state of its own beyond the immutable capability cache; selection state
// belongs to the caller.
type Linker struct {
	eng   engine.Engine
	cache *Cache
}

// New creates a Linker over the given engine. The capability cache is not
// built yet; call BuildCache at process initialization so registry queries
// never run inside an interactive call path.
func New(eng engine.Engine) *Linker {
	return &Linker{
		eng:   eng,
		cache: NewCache(eng),
	}
}

// Engine returns the underlying engine.
func (l *Linker) Engine() engine.Engine { return l.eng }

// Cache returns the capability cache.
func (l *Linker) Cache() *Cache { return l.cache }

// BuildCache builds the capability catalog. Idempotent; a registry failure
// is fatal to the cache and is returned on every subsequent call.
func (l *Linker) BuildCache() error { return l.cache.Build() }

// CapabilitiesByCategory returns the cached catalog as a category-to-entries
// mapping, building the cache if needed.
func (l *Linker) CapabilitiesByCategory() (map[string][]types.Capability, error) {
	if err := l.cache.Build(); err != nil {
		return nil, err
	}
	return l.cache.ByCategory(), nil
}

// Categories returns the ordered category names ("General" first, the rest
// sorted), building the cache if needed.
func (l *Linker) Categories() ([]string, error) {
	if err := l.cache.Build(); err != nil {
		return nil, err
	}
	return l.cache.Categories(), nil
}
