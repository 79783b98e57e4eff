// Package backend provides the public factory for roster storage backends.
// Implementation details stay in internal/memory and internal/sqlite.
package backend

import (
	"fmt"

	"github.com/mesh-intelligence/roster/internal/memory"
	"github.com/mesh-intelligence/roster/internal/sqlite"
	"github.com/mesh-intelligence/roster/pkg/types"
)

// New creates an unattached backend for the named kind.
// Returns ErrBackendUnknown for anything but memory or sqlite.
func New(kind string) (types.Cupboard, error) {
	switch kind {
	case types.BackendMemory:
		return memory.NewBackend(), nil
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, kind)
	}
}

// Open creates the backend named by config.Backend and attaches it.
// The caller must Detach the returned Cupboard.
//
// Example:
//
//	cupboard, err := backend.Open(types.Config{Backend: types.BackendMemory})
//	if err != nil {
//	    return err
//	}
//	defer cupboard.Detach()
func Open(config types.Config) (types.Cupboard, error) {
	cupboard, err := New(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := cupboard.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return cupboard, nil
}
