package rules

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/backend"
	"github.com/mesh-intelligence/roster/pkg/types"
)

var backends = []string{types.BackendMemory, types.BackendSQLite}

// newTables attaches a fresh backend of the given kind.
func newTables(t *testing.T, kind string) types.Tables {
	t.Helper()
	cupboard, err := backend.Open(types.Config{Backend: kind})
	require.NoError(t, err)
	t.Cleanup(func() { cupboard.Detach() })
	tables, err := cupboard.Tables()
	require.NoError(t, err)
	return tables
}

// newService returns a Service over a fresh memory backend and the buffer its
// logger writes to.
func newService(t *testing.T) (*Service, *bytes.Buffer) {
	t.Helper()
	return newServiceOver(t, newTables(t, types.BackendMemory), DefaultOptions())
}

func newServiceOver(t *testing.T, tables types.Tables, opts Options) (*Service, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(tables, opts, logger), &buf
}

func mustUser(t *testing.T, s *Service, first string) types.User {
	t.Helper()
	u, err := s.CreateUser(UserInput{FirstName: first, LastName: "Doe", Email: first + "@example.com"})
	require.NoError(t, err)
	return u
}

func mustProfile(t *testing.T, s *Service, userID string) types.Profile {
	t.Helper()
	p, err := s.CreateProfile(ProfileInput{
		UserID:       userID,
		MemberTypeID: types.MemberTypeBasic,
		City:         "Minsk",
		Birthday:     946684800000,
	})
	require.NoError(t, err)
	return p
}

func mustPost(t *testing.T, s *Service, userID, title string) types.Post {
	t.Helper()
	p, err := s.CreatePost(PostInput{UserID: userID, Title: title, Content: "..."})
	require.NoError(t, err)
	return p
}

func mustSubscribe(t *testing.T, s *Service, subscriberID, targetID string) {
	t.Helper()
	_, err := s.Subscribe(subscriberID, targetID)
	require.NoError(t, err)
}

// snapshot captures every row of every table for before/after comparison.
type snapshot struct {
	users    []types.User
	profiles []types.Profile
	posts    []types.Post
}

func takeSnapshot(t *testing.T, s *Service) snapshot {
	t.Helper()
	users, err := s.ListUsers()
	require.NoError(t, err)
	profiles, err := s.ListProfiles()
	require.NoError(t, err)
	posts, err := s.ListPosts()
	require.NoError(t, err)
	return snapshot{users: users, profiles: profiles, posts: posts}
}

var errInjected = errors.New("injected failure")

// failingUserDelete fails every Delete on the users table.
type failingUserDelete struct {
	types.Table[types.User]
}

func (failingUserDelete) Delete(string) (types.User, error) {
	return types.User{}, errInjected
}

// failingProfileRestore fails every Restore on the profiles table.
type failingProfileRestore struct {
	types.Table[types.Profile]
}

func (failingProfileRestore) Restore(types.Removed[types.Profile]) (types.Profile, error) {
	return types.Profile{}, errInjected
}

// blockingUserDelete reports on entered that a Delete has started, waits for
// release, then fails.
type blockingUserDelete struct {
	types.Table[types.User]
	entered chan<- struct{}
	release <-chan struct{}
}

func (b blockingUserDelete) Delete(string) (types.User, error) {
	b.entered <- struct{}{}
	<-b.release
	return types.User{}, errInjected
}

// ignoringContains answers Contains queries with every user, as if the
// lookup returned rows that no longer hold the entry.
type ignoringContains struct {
	types.Table[types.User]
}

func (t ignoringContains) FindMany(filters ...types.Filter) ([]types.User, error) {
	for _, f := range filters {
		if f.Op == types.OpContains {
			return t.Table.FindMany()
		}
	}
	return t.Table.FindMany(filters...)
}
