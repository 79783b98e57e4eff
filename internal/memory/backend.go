// Package memory implements the map-backed storage backend for roster.
// Every row lives in process memory and is discarded on Detach.
package memory

import (
	"sync"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Backend implements the Cupboard interface with one in-memory Table per
// entity type.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config

	users       *Table[types.User]
	profiles    *Table[types.Profile]
	posts       *Table[types.Post]
	memberTypes *Table[types.MemberType]
}

// NewBackend creates a new memory backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Tables returns the typed tables of the attached backend.
// Returns ErrCupboardDetached if the backend is not attached.
func (b *Backend) Tables() (types.Tables, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Tables{}, types.ErrCupboardDetached
	}
	return types.Tables{
		Users:       b.users,
		Profiles:    b.profiles,
		Posts:       b.posts,
		MemberTypes: b.memberTypes,
	}, nil
}

// Attach creates empty tables and seeds the member types.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	users := NewTable[types.User](types.UsersTable, types.NewID)
	profiles := NewTable[types.Profile](types.ProfilesTable, types.NewID)
	posts := NewTable[types.Post](types.PostsTable, types.NewID)
	memberTypes := NewTable[types.MemberType](types.MemberTypesTable, types.NewID)

	if err := types.SeedMemberTypes(memberTypes, config.Seeds()); err != nil {
		return err
	}

	b.users = users
	b.profiles = profiles
	b.posts = posts
	b.memberTypes = memberTypes
	b.config = config
	b.attached = true
	return nil
}

// Detach discards all rows. Detach is idempotent. Tables handed out before
// Detach are emptied so stale handles cannot observe old rows.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.users.reset()
	b.profiles.reset()
	b.posts.reset()
	b.memberTypes.reset()

	b.users, b.profiles, b.posts, b.memberTypes = nil, nil, nil, nil
	b.attached = false
	return nil
}
