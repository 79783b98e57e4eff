package types

import (
	"errors"
	"fmt"
)

// Config holds backend selection and the member types seeded on Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`

	// MemberTypes replaces DefaultMemberTypes when non-empty.
	MemberTypes []MemberType `json:"member_types" yaml:"member_types"`
}

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty      = errors.New("backend must not be empty")
	ErrBackendUnknown    = errors.New("unknown backend")
	ErrMemberTypeInvalid = errors.New("invalid member type seed")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
	seen := make(map[string]bool, len(c.MemberTypes))
	for _, m := range c.MemberTypes {
		switch {
		case m.ID == "":
			return fmt.Errorf("%w: empty id", ErrMemberTypeInvalid)
		case seen[m.ID]:
			return fmt.Errorf("%w: duplicate id %q", ErrMemberTypeInvalid, m.ID)
		case m.MonthPostsLimit < 0:
			return fmt.Errorf("%w: %q has a negative post limit", ErrMemberTypeInvalid, m.ID)
		}
		seen[m.ID] = true
	}
	return nil
}

// Seeds returns the member types to seed: the configured ones, or the
// defaults when none are configured.
func (c Config) Seeds() []MemberType {
	if len(c.MemberTypes) == 0 {
		return DefaultMemberTypes()
	}
	return c.MemberTypes
}
