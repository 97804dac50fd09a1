// Session lifecycle for the seam CLI: hydrate the engine from the session
// store, build the capability catalog up front, and persist the session
// back on save.
package main

import (
	"fmt"

	"github.com/mesh-intelligence/seam/internal/memengine"
	"github.com/mesh-intelligence/seam/internal/sqlite"
	"github.com/mesh-intelligence/seam/pkg/linker"
	"github.com/mesh-intelligence/seam/pkg/types"
)

// session bundles the engine, the editor surface, and the optional store
// for one CLI invocation. The caller must defer close().
type session struct {
	eng   *memengine.Engine
	lnk   *linker.Linker
	store *sqlite.Store
}

// openSession creates the engine with the default capability registry,
// hydrates datasets and links from the store when the sqlite backend is
// configured, and builds the capability catalog. The catalog is built here
// so registry queries never run inside an interactive call path.
func openSession() (*session, error) {
	s := &session{eng: memengine.NewWithDefaults()}

	if resolveBackend() == types.BackendSQLite {
		dataDir, err := resolveDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}

		store := sqlite.NewStore()
		cfg := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
		if err := store.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach store: %w", err)
		}

		datasets, records, err := store.Load()
		if err != nil {
			store.Detach()
			return nil, fmt.Errorf("load session: %w", err)
		}
		if len(datasets) > 0 || len(records) > 0 {
			if err := s.eng.Import(datasets, records); err != nil {
				store.Detach()
				return nil, fmt.Errorf("hydrate session: %w", err)
			}
		}
		s.store = store
	}

	s.lnk = linker.New(s.eng)
	if err := s.lnk.BuildCache(); err != nil {
		s.close()
		return nil, fmt.Errorf("build capability catalog: %w", err)
	}
	return s, nil
}

// save persists the current datasets and link set to the store. A no-op
// for the memory backend.
func (s *session) save() error {
	if s.store == nil {
		return nil
	}
	datasets, records, err := s.eng.Export()
	if err != nil {
		return fmt.Errorf("export session: %w", err)
	}
	if err := s.store.Replace(datasets, records); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// close releases the store. Idempotent.
func (s *session) close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Detach()
}
