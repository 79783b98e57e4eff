package types

import "errors"

// Cupboard defines the interface for backend-agnostic storage access.
// Callers attach to a backend, take its tables, and detach when done.
type Cupboard interface {
	// Tables returns the typed tables of the attached backend.
	// Returns ErrCupboardDetached if the backend is not attached.
	Tables() (Tables, error)

	// Attach initializes the backend described by config and seeds the
	// member types. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources and discards all rows.
	// Idempotent: multiple calls succeed.
	Detach() error
}

// Cupboard lifecycle errors.
var (
	ErrCupboardDetached = errors.New("cupboard is detached")
	ErrAlreadyAttached  = errors.New("cupboard is already attached")
)
