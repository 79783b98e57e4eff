package memory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendMemory}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)

	_, err := b.Tables()
	assert.ErrorIs(t, err, types.ErrCupboardDetached)
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))

	tables, err := b.Tables()
	require.NoError(t, err)
	_, err = tables.Users.Create(types.User{FirstName: "a"})
	require.NoError(t, err)

	require.NoError(t, b.Detach())
	// Idempotent
	require.NoError(t, b.Detach())

	_, err = b.Tables()
	assert.ErrorIs(t, err, types.ErrCupboardDetached)

	// Handles taken before Detach see an empty table.
	all, err := tables.Users.FindMany()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBackend_ReattachStartsEmpty(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendMemory}
	require.NoError(t, b.Attach(config))
	tables, _ := b.Tables()
	_, err := tables.Users.Create(types.User{FirstName: "a"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	require.NoError(t, b.Attach(config))
	defer b.Detach()
	tables, _ = b.Tables()
	all, err := tables.Users.FindMany()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBackend_CustomMemberTypes(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendMemory,
		MemberTypes: []types.MemberType{
			{ID: "gold", Discount: decimal.RequireFromString("12.5"), MonthPostsLimit: 1000},
		},
	}))
	defer b.Detach()

	tables, err := b.Tables()
	require.NoError(t, err)
	all, err := tables.MemberTypes.FindMany()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "gold", all[0].ID)
	assert.Equal(t, "12.5", all[0].Discount.String())
}
