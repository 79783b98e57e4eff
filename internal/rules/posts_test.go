package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestCreatePost(t *testing.T) {
	s, _ := newService(t)
	u := mustUser(t, s, "Ann")

	p := mustPost(t, s, u.ID, "hello")
	require.NoError(t, types.ValidateID(p.ID))

	got, err := s.GetPost(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreatePostOwner(t *testing.T) {
	t.Run("enforced", func(t *testing.T) {
		s, _ := newService(t)
		_, err := s.CreatePost(PostInput{UserID: missingID, Title: "orphan"})
		assert.ErrorIs(t, err, types.ErrInvalidReference)

		all, err := s.ListPosts()
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("permissive", func(t *testing.T) {
		s, _ := newServiceOver(t, newTables(t, types.BackendMemory), Options{EnforcePostOwner: false})
		p, err := s.CreatePost(PostInput{UserID: missingID, Title: "orphan"})
		require.NoError(t, err)
		assert.Equal(t, missingID, p.UserID)
	})
}

func TestPatchPost(t *testing.T) {
	s, _ := newService(t)
	u := mustUser(t, s, "Ann")
	p := mustPost(t, s, u.ID, "hello")

	title := "goodbye"
	got, err := s.PatchPost(p.ID, PostPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, p.Content, got.Content)

	before := takeSnapshot(t, s)
	_, err = s.PatchPost(missingID, PostPatch{Title: &title})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, before, takeSnapshot(t, s))

	_, err = s.PatchPost("x", PostPatch{Title: &title})
	assert.ErrorIs(t, err, types.ErrInvalidIdentifier)
}

func TestDeletePost(t *testing.T) {
	s, _ := newService(t)
	u := mustUser(t, s, "Ann")
	p := mustPost(t, s, u.ID, "hello")

	deleted, err := s.DeletePost(p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, deleted)

	_, err = s.GetPost(p.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = s.DeletePost(p.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListPostsByOwner(t *testing.T) {
	s, _ := newService(t)
	a := mustUser(t, s, "Ann")
	b := mustUser(t, s, "Bob")
	p1 := mustPost(t, s, a.ID, "one")
	mustPost(t, s, b.ID, "two")
	p3 := mustPost(t, s, a.ID, "three")

	got, err := s.ListPosts(types.Equals(types.FieldUserID, a.ID))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, p1.ID, got[0].ID)
	assert.Equal(t, p3.ID, got[1].ID)
}
