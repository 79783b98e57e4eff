package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/internal/tabletest"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func attachedTables(t *testing.T) types.Tables {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite}))
	t.Cleanup(func() { b.Detach() })
	tables, err := b.Tables()
	require.NoError(t, err)
	return tables
}

func TestTableContract(t *testing.T) {
	tabletest.Run(t, attachedTables)
}

func TestWhere(t *testing.T) {
	tbl := &Table[types.User]{codec: userCodec}

	tests := []struct {
		name    string
		filters []types.Filter
		want    string
		args    []any
		wantErr bool
	}{
		{name: "no filters", want: ""},
		{
			name:    "equals",
			filters: []types.Filter{types.Equals(types.FieldEmail, "a@b")},
			want:    " WHERE email = ?",
			args:    []any{"a@b"},
		},
		{
			name:    "anyOf",
			filters: []types.Filter{types.AnyOf(types.FieldID, "x", "y")},
			want:    " WHERE id IN (?,?)",
			args:    []any{"x", "y"},
		},
		{
			name:    "empty anyOf matches nothing",
			filters: []types.Filter{types.AnyOf(types.FieldID)},
			want:    " WHERE 0",
		},
		{
			name:    "contains",
			filters: []types.Filter{types.Contains(types.FieldSubscribedToUserIDs, "x")},
			want:    " WHERE EXISTS (SELECT 1 FROM json_each(users.subscribed_to_user_ids) WHERE json_each.value = ?)",
			args:    []any{"x"},
		},
		{
			name: "and",
			filters: []types.Filter{
				types.Equals(types.FieldFirstName, "a"),
				types.Equals(types.FieldLastName, "b"),
			},
			want: " WHERE first_name = ? AND last_name = ?",
			args: []any{"a", "b"},
		},
		{name: "unknown field", filters: []types.Filter{types.Equals("nope", "x")}, wantErr: true},
		{name: "contains on scalar", filters: []types.Filter{types.Contains(types.FieldEmail, "x")}, wantErr: true},
		{name: "equals on sequence", filters: []types.Filter{types.Equals(types.FieldSubscribedToUserIDs, "x")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args, err := tbl.where(tt.filters)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrInvalidFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestWhereIntegerColumn(t *testing.T) {
	tbl := &Table[types.Profile]{codec: profileCodec}

	got, args, err := tbl.where([]types.Filter{types.Equals(types.FieldBirthday, "1")})
	require.NoError(t, err)
	assert.Equal(t, " WHERE CAST(birthday AS TEXT) = ?", got)
	assert.Equal(t, []any{"1"}, args)

	got, _, err = tbl.where([]types.Filter{types.AnyOf(types.FieldCity, "a")})
	require.NoError(t, err)
	assert.Equal(t, " WHERE city IN (?)", got)
}

func TestTableNumericFilters(t *testing.T) {
	tables := attachedTables(t)

	p, err := tables.Profiles.Create(types.Profile{Birthday: 946684800000, MemberTypeID: types.MemberTypeBasic})
	require.NoError(t, err)

	got, ok, err := tables.Profiles.FindOne(types.Equals(types.FieldBirthday, "946684800000"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p.ID, got.ID)

	mt, ok, err := tables.MemberTypes.FindOne(types.Equals(types.FieldMonthPostsLimit, "100"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, types.MemberTypeBusiness, mt.ID)
}
