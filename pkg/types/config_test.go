package types

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: ""},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "valid memory config",
			config:  Config{Backend: "memory"},
			wantErr: nil,
		},
		{
			name:    "valid sqlite config",
			config:  Config{Backend: "sqlite"},
			wantErr: nil,
		},
		{
			name: "member type with empty id",
			config: Config{Backend: "memory", MemberTypes: []MemberType{
				{ID: "", MonthPostsLimit: 1},
			}},
			wantErr: ErrMemberTypeInvalid,
		},
		{
			name: "duplicate member type id",
			config: Config{Backend: "memory", MemberTypes: []MemberType{
				{ID: "gold", MonthPostsLimit: 1},
				{ID: "gold", MonthPostsLimit: 2},
			}},
			wantErr: ErrMemberTypeInvalid,
		},
		{
			name: "negative post limit",
			config: Config{Backend: "memory", MemberTypes: []MemberType{
				{ID: "gold", MonthPostsLimit: -1},
			}},
			wantErr: ErrMemberTypeInvalid,
		},
		{
			name: "custom member types",
			config: Config{Backend: "sqlite", MemberTypes: []MemberType{
				{ID: "gold", Discount: decimal.NewFromInt(10), MonthPostsLimit: 500},
			}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigSeeds(t *testing.T) {
	defaults := Config{Backend: BackendMemory}.Seeds()
	if len(defaults) != 2 || defaults[0].ID != MemberTypeBasic || defaults[1].ID != MemberTypeBusiness {
		t.Fatalf("unexpected default seeds: %+v", defaults)
	}

	custom := Config{Backend: BackendMemory, MemberTypes: []MemberType{{ID: "gold"}}}.Seeds()
	if len(custom) != 1 || custom[0].ID != "gold" {
		t.Fatalf("unexpected custom seeds: %+v", custom)
	}
}
