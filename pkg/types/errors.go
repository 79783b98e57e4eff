package types

import "errors"

// Entity and relationship errors. Everything except ErrInvariantViolation and
// ErrCascadeIncomplete is a caller error: the request was wrong, the store is
// fine.
var (
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidReference   = errors.New("referenced entity does not exist")
	ErrConflict           = errors.New("entity already exists")
	ErrNotSubscribed      = errors.New("user is not subscribed")
	ErrInvariantViolation = errors.New("internal invariant violated")
	ErrCascadeIncomplete  = errors.New("cascade compensation incomplete")
)

// Table operation errors.
var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidData   = errors.New("invalid entity data")
)
