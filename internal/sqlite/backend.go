// Package sqlite implements the SQLite storage backend for roster.
// The database is a private in-memory instance opened on Attach and closed
// on Detach; nothing reaches the filesystem.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// memoryDSN opens a database private to its connection.
const memoryDSN = ":memory:"

// Backend implements the Cupboard interface using SQLite as the query engine.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	users       *Table[types.User]
	profiles    *Table[types.Profile]
	posts       *Table[types.Post]
	memberTypes *Table[types.MemberType]
}

// NewBackend creates a new SQLite backend instance.
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

// Attach opens the database, creates the schema, and seeds the member types.
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

	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	// Every connection to :memory: gets its own database, so pin the pool
	// to one connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	users := newTable(db, userCodec, types.NewID)
	profiles := newTable(db, profileCodec, types.NewID)
	posts := newTable(db, postCodec, types.NewID)
	memberTypes := newTable(db, memberTypeCodec, types.NewID)

	if err := types.SeedMemberTypes(memberTypes, config.Seeds()); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.users = users
	b.profiles = profiles
	b.posts = posts
	b.memberTypes = memberTypes
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database, discarding all rows. Detach is idempotent.
// Tables handed out before Detach fail on use.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	b.users, b.profiles, b.posts, b.memberTypes = nil, nil, nil, nil
	b.attached = false
	if err != nil {
		return fmt.Errorf("closing sqlite: %w", err)
	}
	return nil
}

func createSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
