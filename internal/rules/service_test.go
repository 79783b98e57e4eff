package rules

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/roster/pkg/types"
)

func TestIsFault(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{types.ErrNotFound, false},
		{fmt.Errorf("user %q: %w", "x", types.ErrInvalidIdentifier), false},
		{types.ErrConflict, false},
		{types.ErrInvalidReference, false},
		{types.ErrNotSubscribed, false},
		{types.ErrInvalidFilter, false},
		{types.ErrInvariantViolation, true},
		{errors.Join(types.ErrNotFound, types.ErrCascadeIncomplete), true},
		{errors.New("disk on fire"), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsFault(tt.err), "%v", tt.err)
	}
}

func TestNewDefaultsLogger(t *testing.T) {
	s := New(newTables(t, types.BackendMemory), DefaultOptions(), nil)
	assert.NotNil(t, s.logger)
}
