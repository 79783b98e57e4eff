// Package rules binds the roster entities together. It owns every operation
// that touches more than one table: reference checks on create and patch,
// the subscription graph, and the user delete cascade.
package rules

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Options tunes rule enforcement.
type Options struct {
	// EnforcePostOwner rejects posts whose userId has no User.
	EnforcePostOwner bool
}

// DefaultOptions returns the options used when config sets nothing.
func DefaultOptions() Options {
	return Options{EnforcePostOwner: true}
}

// Service runs composite operations over an attached set of tables.
// Mutations hold the write lock and reads the read lock, so no reader sees a
// cascade part way through.
type Service struct {
	users       types.Table[types.User]
	profiles    types.Table[types.Profile]
	posts       types.Table[types.Post]
	memberTypes types.Table[types.MemberType]

	opts   Options
	logger *slog.Logger

	mu sync.RWMutex
}

// New creates a Service over tables. A nil logger uses slog.Default.
func New(tables types.Tables, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:       tables.Users,
		profiles:    tables.Profiles,
		posts:       tables.Posts,
		memberTypes: tables.MemberTypes,
		opts:        opts,
		logger:      logger,
	}
}

// faults are errors that mean the store, not the request, is wrong.
var faults = []error{
	types.ErrInvariantViolation,
	types.ErrCascadeIncomplete,
}

// callerErrors are errors the caller can fix by changing the request.
var callerErrors = []error{
	types.ErrInvalidIdentifier,
	types.ErrNotFound,
	types.ErrInvalidReference,
	types.ErrConflict,
	types.ErrNotSubscribed,
	types.ErrInvalidFilter,
	types.ErrInvalidData,
}

// IsFault reports whether err is a server fault rather than a caller error.
// Unrecognized errors count as faults.
func IsFault(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range faults {
		if errors.Is(err, target) {
			return true
		}
	}
	for _, target := range callerErrors {
		if errors.Is(err, target) {
			return false
		}
	}
	return true
}
