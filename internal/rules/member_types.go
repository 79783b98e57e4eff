package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// MemberTypePatch lists the MemberType fields to replace.
type MemberTypePatch struct {
	Discount        *decimal.Decimal `json:"discount,omitempty"`
	MonthPostsLimit *int             `json:"monthPostsLimit,omitempty"`
}

// GetMemberType returns the MemberType with the given id. Member type ids are
// seeded names, so no syntax check applies.
func (s *Service) GetMemberType(id string) (types.MemberType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok, err := s.memberTypes.FindOne(types.Equals(types.FieldID, id))
	if err != nil {
		return types.MemberType{}, err
	}
	if !ok {
		return types.MemberType{}, fmt.Errorf("member type %q: %w", id, types.ErrNotFound)
	}
	return m, nil
}

// ListMemberTypes returns MemberTypes matching every filter, in seed order.
func (s *Service) ListMemberTypes(filters ...types.Filter) ([]types.MemberType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.memberTypes.FindMany(filters...)
}

// PatchMemberType replaces the discount and/or the monthly post limit.
func (s *Service) PatchMemberType(id string, patch MemberTypePatch) (types.MemberType, error) {
	if patch.MonthPostsLimit != nil && *patch.MonthPostsLimit < 0 {
		return types.MemberType{}, fmt.Errorf("%w: monthPostsLimit %d is negative", types.ErrInvalidData, *patch.MonthPostsLimit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.memberTypes.Change(id, func(m *types.MemberType) error {
		setIf(&m.Discount, patch.Discount)
		setIf(&m.MonthPostsLimit, patch.MonthPostsLimit)
		return nil
	})
}
