package rules

import (
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// ProfileInput carries the fields of a new Profile.
type ProfileInput struct {
	UserID       string `json:"userId"`
	MemberTypeID string `json:"memberTypeId"`
	Avatar       string `json:"avatar"`
	Birthday     int64  `json:"birthday"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Sex          string `json:"sex"`
	Street       string `json:"street"`
}

// ProfilePatch lists the Profile fields to replace. The owning user cannot
// change.
type ProfilePatch struct {
	MemberTypeID *string `json:"memberTypeId,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
	Birthday     *int64  `json:"birthday,omitempty"`
	City         *string `json:"city,omitempty"`
	Country      *string `json:"country,omitempty"`
	Sex          *string `json:"sex,omitempty"`
	Street       *string `json:"street,omitempty"`
}

// CreateProfile stores a Profile for an existing User. A User has at most one
// Profile: a second one is ErrConflict. An unknown user or member type is
// ErrInvalidReference.
func (s *Service) CreateProfile(in ProfileInput) (types.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.profiles.FindOne(types.Equals(types.FieldUserID, in.UserID))
	if err != nil {
		return types.Profile{}, err
	}
	if exists {
		return types.Profile{}, fmt.Errorf("profile for user %q: %w", in.UserID, types.ErrConflict)
	}
	if err := s.requireUser(in.UserID); err != nil {
		return types.Profile{}, err
	}
	if err := s.requireMemberType(in.MemberTypeID); err != nil {
		return types.Profile{}, err
	}

	profile, err := s.profiles.Create(types.Profile{
		UserID:       in.UserID,
		MemberTypeID: in.MemberTypeID,
		Avatar:       in.Avatar,
		Birthday:     in.Birthday,
		City:         in.City,
		Country:      in.Country,
		Sex:          in.Sex,
		Street:       in.Street,
	})
	if err != nil {
		return types.Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	s.logger.Debug("profile created", "profileId", profile.ID, "userId", profile.UserID)
	return profile, nil
}

// GetProfile returns the Profile with the given id.
func (s *Service) GetProfile(id string) (types.Profile, error) {
	if err := types.ValidateID(id); err != nil {
		return types.Profile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok, err := s.profiles.FindOne(types.Equals(types.FieldID, id))
	if err != nil {
		return types.Profile{}, err
	}
	if !ok {
		return types.Profile{}, fmt.Errorf("profile %q: %w", id, types.ErrNotFound)
	}
	return profile, nil
}

// ListProfiles returns Profiles matching every filter, in insertion order.
func (s *Service) ListProfiles(filters ...types.Filter) ([]types.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles.FindMany(filters...)
}

// PatchProfile merges the non-nil fields of patch into the Profile. A new
// memberTypeId must name an existing MemberType.
func (s *Service) PatchProfile(id string, patch ProfilePatch) (types.Profile, error) {
	if err := types.ValidateID(id); err != nil {
		return types.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok, err := s.profiles.FindOne(types.Equals(types.FieldID, id)); err != nil {
		return types.Profile{}, err
	} else if !ok {
		return types.Profile{}, fmt.Errorf("profile %q: %w", id, types.ErrNotFound)
	}
	if patch.MemberTypeID != nil {
		if err := s.requireMemberType(*patch.MemberTypeID); err != nil {
			return types.Profile{}, err
		}
	}

	return s.profiles.Change(id, func(p *types.Profile) error {
		setIf(&p.MemberTypeID, patch.MemberTypeID)
		setIf(&p.Avatar, patch.Avatar)
		setIf(&p.Birthday, patch.Birthday)
		setIf(&p.City, patch.City)
		setIf(&p.Country, patch.Country)
		setIf(&p.Sex, patch.Sex)
		setIf(&p.Street, patch.Street)
		return nil
	})
}

// DeleteProfile removes the Profile and returns it.
func (s *Service) DeleteProfile(id string) (types.Profile, error) {
	if err := types.ValidateID(id); err != nil {
		return types.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.profiles.Delete(id)
}

// requireUser returns ErrInvalidReference unless userID names a User.
func (s *Service) requireUser(userID string) error {
	_, ok, err := s.users.FindOne(types.Equals(types.FieldID, userID))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %q: %w", userID, types.ErrInvalidReference)
	}
	return nil
}

// requireMemberType returns ErrInvalidReference unless id names a MemberType.
func (s *Service) requireMemberType(id string) error {
	_, ok, err := s.memberTypes.FindOne(types.Equals(types.FieldID, id))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("member type %q: %w", id, types.ErrInvalidReference)
	}
	return nil
}
