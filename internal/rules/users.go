package rules

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// UserInput carries the fields of a new User.
type UserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// UserPatch lists the User fields to replace. Nil fields are left alone.
type UserPatch struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// CreateUser stores a new User with an empty subscription list.
func (s *Service) CreateUser(in UserInput) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Create(types.User{
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		Email:               in.Email,
		SubscribedToUserIDs: []string{},
	})
	if err != nil {
		return types.User{}, fmt.Errorf("creating user: %w", err)
	}
	s.logger.Debug("user created", "userId", user.ID)
	return user, nil
}

// GetUser returns the User with the given id.
func (s *Service) GetUser(id string) (types.User, error) {
	if err := types.ValidateID(id); err != nil {
		return types.User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user(id)
}

// ListUsers returns Users matching every filter, in insertion order.
func (s *Service) ListUsers(filters ...types.Filter) ([]types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.FindMany(filters...)
}

// PatchUser merges the non-nil fields of patch into the User.
func (s *Service) PatchUser(id string, patch UserPatch) (types.User, error) {
	if err := types.ValidateID(id); err != nil {
		return types.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.users.Change(id, func(u *types.User) error {
		setIf(&u.FirstName, patch.FirstName)
		setIf(&u.LastName, patch.LastName)
		setIf(&u.Email, patch.Email)
		return nil
	})
}

// Subscribe appends targetID to the subscriber's subscription list.
// Repeated calls append repeated entries.
func (s *Service) Subscribe(subscriberID, targetID string) (types.User, error) {
	if err := validateIDs(subscriberID, targetID); err != nil {
		return types.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.user(targetID); err != nil {
		return types.User{}, err
	}
	user, err := s.users.Change(subscriberID, func(u *types.User) error {
		u.SubscribedToUserIDs = append(u.SubscribedToUserIDs, targetID)
		return nil
	})
	if err != nil {
		return types.User{}, err
	}
	s.logger.Debug("subscribed", "userId", subscriberID, "targetId", targetID)
	return user, nil
}

// Unsubscribe removes the first occurrence of targetID from the subscriber's
// subscription list. Returns ErrNotSubscribed if there is none.
func (s *Service) Unsubscribe(subscriberID, targetID string) (types.User, error) {
	if err := validateIDs(subscriberID, targetID); err != nil {
		return types.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.user(targetID); err != nil {
		return types.User{}, err
	}
	user, err := s.users.Change(subscriberID, func(u *types.User) error {
		i := slices.Index(u.SubscribedToUserIDs, targetID)
		if i < 0 {
			return fmt.Errorf("user %q to %q: %w", subscriberID, targetID, types.ErrNotSubscribed)
		}
		u.SubscribedToUserIDs = slices.Delete(u.SubscribedToUserIDs, i, i+1)
		return nil
	})
	if err != nil {
		return types.User{}, err
	}
	s.logger.Debug("unsubscribed", "userId", subscriberID, "targetId", targetID)
	return user, nil
}

// user looks up a User by id, mapping absence to ErrNotFound.
func (s *Service) user(id string) (types.User, error) {
	user, ok, err := s.users.FindOne(types.Equals(types.FieldID, id))
	if err != nil {
		return types.User{}, err
	}
	if !ok {
		return types.User{}, fmt.Errorf("user %q: %w", id, types.ErrNotFound)
	}
	return user, nil
}

func validateIDs(ids ...string) error {
	for _, id := range ids {
		if err := types.ValidateID(id); err != nil {
			return err
		}
	}
	return nil
}

func setIf[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}
