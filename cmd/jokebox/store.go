// Store construction for the jokebox CLI. The store is built explicitly per
// invocation and handed to whatever consumes it; there is no process-wide
// database singleton.
package main

import (
	"fmt"

	"github.com/jokebox/jokebox/internal/memory"
	"github.com/jokebox/jokebox/internal/sqlite"
	"github.com/jokebox/jokebox/pkg/types"
)

// openStore constructs the store selected by the effective configuration.
// Callers own the returned store and must Close it.
func openStore() (types.Store, error) {
	switch cfg.Backend {
	case types.BackendSQLite:
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return store, nil
	case types.BackendMemory:
		return memory.NewSeeded(), nil
	default:
		return nil, types.ErrBackendUnknown
	}
}
