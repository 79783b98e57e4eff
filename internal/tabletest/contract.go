// Package tabletest holds the behavioural contract every types.Table
// implementation must satisfy. Backends call Run from their own tests.
package tabletest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Factory returns freshly attached tables for one subtest.
type Factory func(t *testing.T) types.Tables

// Run executes the table contract against the tables produced by newTables.
func Run(t *testing.T, newTables Factory) {
	t.Run("CreateAssignsValidID", func(t *testing.T) { testCreateAssignsValidID(t, newTables(t)) })
	t.Run("FindManyInsertionOrder", func(t *testing.T) { testFindManyInsertionOrder(t, newTables(t)) })
	t.Run("FindManyFilters", func(t *testing.T) { testFindManyFilters(t, newTables(t)) })
	t.Run("FindOneAbsent", func(t *testing.T) { testFindOneAbsent(t, newTables(t)) })
	t.Run("InvalidFilter", func(t *testing.T) { testInvalidFilter(t, newTables(t)) })
	t.Run("ChangeMergesAndKeepsID", func(t *testing.T) { testChangeMergesAndKeepsID(t, newTables(t)) })
	t.Run("ChangeNotFound", func(t *testing.T) { testChangeNotFound(t, newTables(t)) })
	t.Run("ChangeMutateErrorAborts", func(t *testing.T) { testChangeMutateErrorAborts(t, newTables(t)) })
	t.Run("DeleteReturnsRow", func(t *testing.T) { testDeleteReturnsRow(t, newTables(t)) })
	t.Run("InsertConflict", func(t *testing.T) { testInsertConflict(t, newTables(t)) })
	t.Run("RestoreKeepsPosition", func(t *testing.T) { testRestoreKeepsPosition(t, newTables(t)) })
	t.Run("RestoreConflict", func(t *testing.T) { testRestoreConflict(t, newTables(t)) })
	t.Run("NumericFiltersCompareText", func(t *testing.T) { testNumericFiltersCompareText(t, newTables(t)) })
	t.Run("RowsDoNotAlias", func(t *testing.T) { testRowsDoNotAlias(t, newTables(t)) })
	t.Run("SeededMemberTypes", func(t *testing.T) { testSeededMemberTypes(t, newTables(t)) })
	t.Run("ConcurrentChangeLosesNoUpdate", func(t *testing.T) { testConcurrentChange(t, newTables(t)) })
}

func testCreateAssignsValidID(t *testing.T, tables types.Tables) {
	u, err := tables.Users.Create(types.User{ID: "ignored", FirstName: "Ada"})
	require.NoError(t, err)
	assert.NoError(t, types.ValidateID(u.ID))
	assert.NotEqual(t, "ignored", u.ID)
	assert.Equal(t, "Ada", u.FirstName)
	assert.NotNil(t, u.SubscribedToUserIDs)

	got, ok, err := tables.Users.FindOne(types.Equals(types.FieldID, u.ID))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u, got)
}

func testFindManyInsertionOrder(t *testing.T, tables types.Tables) {
	var want []string
	for _, name := range []string{"c", "a", "b"} {
		u, err := tables.Users.Create(types.User{FirstName: name})
		require.NoError(t, err)
		want = append(want, u.ID)
	}
	// Removing from the middle must not disturb the order of the rest.
	_, err := tables.Users.Delete(want[1])
	require.NoError(t, err)
	want = append(want[:1], want[2:]...)

	all, err := tables.Users.FindMany()
	require.NoError(t, err)
	var got []string
	for _, u := range all {
		got = append(got, u.ID)
	}
	assert.Equal(t, want, got)
}

func testFindManyFilters(t *testing.T, tables types.Tables) {
	a, err := tables.Users.Create(types.User{FirstName: "a"})
	require.NoError(t, err)
	b, err := tables.Users.Create(types.User{FirstName: "b", SubscribedToUserIDs: []string{a.ID}})
	require.NoError(t, err)
	c, err := tables.Users.Create(types.User{FirstName: "c", SubscribedToUserIDs: []string{a.ID, b.ID}})
	require.NoError(t, err)

	subs, err := tables.Users.FindMany(types.Contains(types.FieldSubscribedToUserIDs, a.ID))
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, b.ID, subs[0].ID)
	assert.Equal(t, c.ID, subs[1].ID)

	pair, err := tables.Users.FindMany(types.AnyOf(types.FieldID, a.ID, c.ID, "missing"))
	require.NoError(t, err)
	require.Len(t, pair, 2)
	assert.Equal(t, a.ID, pair[0].ID)
	assert.Equal(t, c.ID, pair[1].ID)

	none, err := tables.Users.FindMany(types.AnyOf(types.FieldID))
	require.NoError(t, err)
	assert.Empty(t, none)

	both, err := tables.Users.FindMany(
		types.Contains(types.FieldSubscribedToUserIDs, a.ID),
		types.Equals(types.FieldFirstName, "c"),
	)
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, c.ID, both[0].ID)

	p1, err := tables.Posts.Create(types.Post{UserID: a.ID, Title: "one"})
	require.NoError(t, err)
	_, err = tables.Posts.Create(types.Post{UserID: b.ID, Title: "two"})
	require.NoError(t, err)
	p3, err := tables.Posts.Create(types.Post{UserID: a.ID, Title: "three"})
	require.NoError(t, err)

	owned, err := tables.Posts.FindMany(types.Equals(types.FieldUserID, a.ID))
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, p1.ID, owned[0].ID)
	assert.Equal(t, p3.ID, owned[1].ID)
}

func testFindOneAbsent(t *testing.T, tables types.Tables) {
	p, ok, err := tables.Profiles.FindOne(types.Equals(types.FieldUserID, types.NewID()))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, types.Profile{}, p)
}

func testInvalidFilter(t *testing.T, tables types.Tables) {
	_, err := tables.Users.Create(types.User{FirstName: "a"})
	require.NoError(t, err)

	_, err = tables.Users.FindMany(types.Equals("nickname", "x"))
	assert.ErrorIs(t, err, types.ErrInvalidFilter)

	_, _, err = tables.Users.FindOne(types.Contains(types.FieldEmail, "x"))
	assert.ErrorIs(t, err, types.ErrInvalidFilter)

	_, err = tables.Users.FindMany(types.Equals(types.FieldSubscribedToUserIDs, "x"))
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func testChangeMergesAndKeepsID(t *testing.T, tables types.Tables) {
	p, err := tables.Posts.Create(types.Post{UserID: "owner", Title: "draft", Content: "body"})
	require.NoError(t, err)

	changed, err := tables.Posts.Change(p.ID, func(row *types.Post) error {
		row.Title = "final"
		row.ID = "hijacked"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, changed.ID)
	assert.Equal(t, "final", changed.Title)
	assert.Equal(t, "body", changed.Content)

	got, ok, err := tables.Posts.FindOne(types.Equals(types.FieldID, p.ID))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, changed, got)

	_, ok, err = tables.Posts.FindOne(types.Equals(types.FieldID, "hijacked"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func testChangeNotFound(t *testing.T, tables types.Tables) {
	called := false
	_, err := tables.Users.Change(types.NewID(), func(*types.User) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.False(t, called)
}

func testChangeMutateErrorAborts(t *testing.T, tables types.Tables) {
	u, err := tables.Users.Create(types.User{FirstName: "a", SubscribedToUserIDs: []string{"x"}})
	require.NoError(t, err)

	_, err = tables.Users.Change(u.ID, func(row *types.User) error {
		row.FirstName = "b"
		row.SubscribedToUserIDs = nil
		return types.ErrNotSubscribed
	})
	assert.ErrorIs(t, err, types.ErrNotSubscribed)

	got, _, err := tables.Users.FindOne(types.Equals(types.FieldID, u.ID))
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func testDeleteReturnsRow(t *testing.T, tables types.Tables) {
	u, err := tables.Users.Create(types.User{FirstName: "a"})
	require.NoError(t, err)

	deleted, err := tables.Users.Delete(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, deleted)

	_, ok, err := tables.Users.FindOne(types.Equals(types.FieldID, u.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = tables.Users.Delete(u.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testInsertConflict(t *testing.T, tables types.Tables) {
	p, err := tables.Profiles.Create(types.Profile{UserID: "u", City: "Oslo"})
	require.NoError(t, err)

	_, err = tables.Profiles.Insert(types.Profile{ID: p.ID, UserID: "other"})
	assert.ErrorIs(t, err, types.ErrConflict)

	_, err = tables.Profiles.Insert(types.Profile{UserID: "other"})
	assert.ErrorIs(t, err, types.ErrInvalidIdentifier)

	_, err = tables.Profiles.Delete(p.ID)
	require.NoError(t, err)
	restored, err := tables.Profiles.Insert(p)
	require.NoError(t, err)
	assert.Equal(t, p, restored)
}

func testRowsDoNotAlias(t *testing.T, tables types.Tables) {
	u, err := tables.Users.Create(types.User{SubscribedToUserIDs: []string{"a"}})
	require.NoError(t, err)
	u.SubscribedToUserIDs[0] = "mutated"

	all, err := tables.Users.FindMany()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"a"}, all[0].SubscribedToUserIDs)
	all[0].SubscribedToUserIDs[0] = "mutated"

	again, _, err := tables.Users.FindOne(types.Equals(types.FieldID, u.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.SubscribedToUserIDs)
}

func testSeededMemberTypes(t *testing.T, tables types.Tables) {
	all, err := tables.MemberTypes.FindMany()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, types.MemberTypeBasic, all[0].ID)
	assert.Equal(t, 20, all[0].MonthPostsLimit)
	assert.True(t, all[0].Discount.IsZero())
	assert.Equal(t, types.MemberTypeBusiness, all[1].ID)
	assert.Equal(t, 100, all[1].MonthPostsLimit)
	assert.Equal(t, "5", all[1].Discount.String())
}

func testConcurrentChange(t *testing.T, tables types.Tables) {
	u, err := tables.Users.Create(types.User{FirstName: "a"})
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tables.Users.Change(u.ID, func(row *types.User) error {
				row.SubscribedToUserIDs = append(row.SubscribedToUserIDs, "x")
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _, err := tables.Users.FindOne(types.Equals(types.FieldID, u.ID))
	require.NoError(t, err)
	assert.Len(t, got.SubscribedToUserIDs, writers)
}

func postTitles(t *testing.T, tables types.Tables) []string {
	t.Helper()
	posts, err := tables.Posts.FindMany()
	require.NoError(t, err)
	titles := []string{}
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return titles
}

func testRestoreKeepsPosition(t *testing.T, tables types.Tables) {
	var ids []string
	for _, title := range []string{"a", "b", "c", "d"} {
		p, err := tables.Posts.Create(types.Post{UserID: "u", Title: title})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	b, err := tables.Posts.Remove(ids[1])
	require.NoError(t, err)
	assert.Equal(t, "b", b.Row.Title)
	c, err := tables.Posts.Remove(ids[2])
	require.NoError(t, err)
	assert.Less(t, b.Seq, c.Seq)
	assert.Equal(t, []string{"a", "d"}, postTitles(t, tables))

	// Restore order does not matter; each row returns to its own slot.
	_, err = tables.Posts.Restore(c)
	require.NoError(t, err)
	restored, err := tables.Posts.Restore(b)
	require.NoError(t, err)
	assert.Equal(t, b.Row, restored)
	assert.Equal(t, []string{"a", "b", "c", "d"}, postTitles(t, tables))

	_, err = tables.Posts.Create(types.Post{UserID: "u", Title: "e"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, postTitles(t, tables))
}

func testRestoreConflict(t *testing.T, tables types.Tables) {
	p, err := tables.Profiles.Create(types.Profile{UserID: "u", City: "Oslo"})
	require.NoError(t, err)
	removed, err := tables.Profiles.Remove(p.ID)
	require.NoError(t, err)
	_, err = tables.Profiles.Restore(removed)
	require.NoError(t, err)

	_, err = tables.Profiles.Restore(removed)
	assert.ErrorIs(t, err, types.ErrConflict)

	other := types.Profile{ID: types.NewID(), UserID: "v"}
	_, err = tables.Profiles.Restore(types.Removed[types.Profile]{Row: other, Seq: removed.Seq})
	assert.ErrorIs(t, err, types.ErrConflict)

	_, err = tables.Profiles.Restore(types.Removed[types.Profile]{Row: other})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	_, err = tables.Profiles.Remove(types.NewID())
	assert.ErrorIs(t, err, types.ErrNotFound)

	all, err := tables.Profiles.FindMany()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p, all[0])
}

func testNumericFiltersCompareText(t *testing.T, tables types.Tables) {
	_, err := tables.Profiles.Create(types.Profile{UserID: "u", Birthday: 946684800000})
	require.NoError(t, err)

	tests := []struct {
		value string
		want  int
	}{
		{"946684800000", 1},
		{"0946684800000", 0},
		{"946684800000.0", 0},
		{" 946684800000", 0},
	}
	for _, tt := range tests {
		got, err := tables.Profiles.FindMany(types.Equals(types.FieldBirthday, tt.value))
		require.NoError(t, err)
		assert.Len(t, got, tt.want, "birthday = %q", tt.value)

		got, err = tables.Profiles.FindMany(types.AnyOf(types.FieldBirthday, tt.value))
		require.NoError(t, err)
		assert.Len(t, got, tt.want, "birthday in %q", tt.value)
	}

	limits, err := tables.MemberTypes.FindMany(types.Equals(types.FieldMonthPostsLimit, "20.0"))
	require.NoError(t, err)
	assert.Empty(t, limits)
	limits, err = tables.MemberTypes.FindMany(types.Equals(types.FieldMonthPostsLimit, "20"))
	require.NoError(t, err)
	require.Len(t, limits, 1)
	assert.Equal(t, types.MemberTypeBasic, limits[0].ID)
}
