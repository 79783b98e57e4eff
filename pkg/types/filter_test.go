package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	u := User{
		ID:                  "u1",
		FirstName:           "Ada",
		LastName:            "Lovelace",
		Email:               "ada@example.com",
		SubscribedToUserIDs: []string{"u2", "u3"},
	}

	tests := []struct {
		name    string
		filters []Filter
		want    bool
		wantErr error
	}{
		{name: "no filters", filters: nil, want: true},
		{name: "equals hit", filters: []Filter{Equals(FieldFirstName, "Ada")}, want: true},
		{name: "equals miss", filters: []Filter{Equals(FieldFirstName, "Grace")}, want: false},
		{name: "contains hit", filters: []Filter{Contains(FieldSubscribedToUserIDs, "u3")}, want: true},
		{name: "contains miss", filters: []Filter{Contains(FieldSubscribedToUserIDs, "u9")}, want: false},
		{name: "any of hit", filters: []Filter{AnyOf(FieldID, "u9", "u1")}, want: true},
		{name: "any of empty set", filters: []Filter{AnyOf(FieldID)}, want: false},
		{
			name:    "filters are anded",
			filters: []Filter{Equals(FieldFirstName, "Ada"), Equals(FieldLastName, "Hopper")},
			want:    false,
		},
		{name: "unknown field", filters: []Filter{Equals("nickname", "x")}, wantErr: ErrInvalidFilter},
		{name: "equals on sequence", filters: []Filter{Equals(FieldSubscribedToUserIDs, "u2")}, wantErr: ErrInvalidFilter},
		{name: "contains on scalar", filters: []Filter{Contains(FieldEmail, "ada")}, wantErr: ErrInvalidFilter},
		{name: "unknown operator", filters: []Filter{{Key: FieldID, Op: "like", Values: []string{"u"}}}, wantErr: ErrInvalidFilter},
		{name: "empty key", filters: []Filter{{Op: OpEquals, Values: []string{"u"}}}, wantErr: ErrInvalidFilter},
		{name: "equals with two values", filters: []Filter{{Key: FieldID, Op: OpEquals, Values: []string{"a", "b"}}}, wantErr: ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(u, tt.filters)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchNumericFields(t *testing.T) {
	p := Profile{ID: "p1", Birthday: 631152000000}
	ok, err := Match(p, []Filter{Equals(FieldBirthday, "631152000000")})
	require.NoError(t, err)
	assert.True(t, ok)

	m := DefaultMemberTypes()[1]
	ok, err = Match(m, []Filter{Equals(FieldMonthPostsLimit, "100"), Equals(FieldDiscount, "5")})
	require.NoError(t, err)
	assert.True(t, ok)
}
