package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestParseFilters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []types.Filter
	}{
		{name: "none", args: nil, want: []types.Filter{}},
		{name: "equals", args: []string{"email=a@b.c"}, want: []types.Filter{types.Equals("email", "a@b.c")}},
		{name: "empty value", args: []string{"city="}, want: []types.Filter{types.Equals("city", "")}},
		{name: "any of", args: []string{"id=x,y"}, want: []types.Filter{types.AnyOf("id", "x", "y")}},
		{name: "contains", args: []string{"subscribedToUserIds~x"}, want: []types.Filter{types.Contains("subscribedToUserIds", "x")}},
		{name: "tilde inside value", args: []string{"title=a~b"}, want: []types.Filter{types.Equals("title", "a~b")}},
		{
			name: "several",
			args: []string{"firstName=Ann", "lastName=Doe"},
			want: []types.Filter{types.Equals("firstName", "Ann"), types.Equals("lastName", "Doe")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilters(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFiltersRejectsMalformed(t *testing.T) {
	for _, arg := range []string{"email", "=x", "~x"} {
		_, err := parseFilters([]string{arg})
		assert.ErrorIs(t, err, types.ErrInvalidFilter, arg)
	}
}
