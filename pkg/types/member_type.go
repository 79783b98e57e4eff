package types

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Member type filter keys.
const (
	FieldDiscount        = "discount"
	FieldMonthPostsLimit = "monthPostsLimit"
)

// Built-in member type IDs.
const (
	MemberTypeBasic    = "basic"
	MemberTypeBusiness = "business"
)

// MemberType is a subscription tier referenced by profiles. Member types are
// seeded when a backend attaches and are never created or deleted afterwards.
type MemberType struct {
	ID              string          `json:"id"`
	Discount        decimal.Decimal `json:"discount"`
	MonthPostsLimit int             `json:"monthPostsLimit"`
}

func (m MemberType) EntityID() string { return m.ID }

func (m MemberType) WithID(id string) MemberType {
	m.ID = id
	return m
}

func (m MemberType) Clone() MemberType { return m }

func (m MemberType) Field(key string) (any, bool) {
	switch key {
	case FieldID:
		return m.ID, true
	case FieldDiscount:
		return m.Discount.String(), true
	case FieldMonthPostsLimit:
		return strconv.Itoa(m.MonthPostsLimit), true
	}
	return nil, false
}

// DefaultMemberTypes returns the member types seeded when the configuration
// does not name any.
func DefaultMemberTypes() []MemberType {
	return []MemberType{
		{ID: MemberTypeBasic, Discount: decimal.Zero, MonthPostsLimit: 20},
		{ID: MemberTypeBusiness, Discount: decimal.NewFromInt(5), MonthPostsLimit: 100},
	}
}

// SeedMemberTypes inserts seeds into table in order.
func SeedMemberTypes(table Table[MemberType], seeds []MemberType) error {
	for _, m := range seeds {
		if _, err := table.Insert(m); err != nil {
			return fmt.Errorf("seeding member type %q: %w", m.ID, err)
		}
	}
	return nil
}
