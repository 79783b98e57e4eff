package rules

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// DeleteUser removes a User together with everything that depends on it:
// its Profile, its Posts, and every other User's subscription to it.
//
// The existence check runs before any cascade step. If a step fails, the
// steps already applied are compensated in reverse order and the original
// error is returned. When compensation also fails the error additionally
// matches types.ErrCascadeIncomplete.
func (s *Service) DeleteUser(id string) (types.User, error) {
	if err := types.ValidateID(id); err != nil {
		return types.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.user(id); err != nil {
		return types.User{}, err
	}

	c := &cascade{svc: s, userID: id}
	user, err := c.run()
	if err != nil {
		return types.User{}, c.abort(err)
	}
	return user, nil
}

// cascade is one DeleteUser in flight.
type cascade struct {
	svc    *Service
	userID string
	undo   undoLog

	profiles    int
	posts       int
	subscribers int
}

func (c *cascade) run() (types.User, error) {
	s := c.svc
	s.logger.Info("deleting user", "userId", c.userID)

	// 1. Profile
	profile, ok, err := s.profiles.FindOne(types.Equals(types.FieldUserID, c.userID))
	if err != nil {
		return types.User{}, fmt.Errorf("finding profile: %w", err)
	}
	if ok {
		if err := c.deleteProfile(profile.ID); err != nil {
			return types.User{}, err
		}
	}

	// 2. Posts
	posts, err := s.posts.FindMany(types.Equals(types.FieldUserID, c.userID))
	if err != nil {
		return types.User{}, fmt.Errorf("finding posts: %w", err)
	}
	if err := c.deletePosts(posts); err != nil {
		return types.User{}, err
	}

	// 3. Subscription repair. The user's own list goes with its row.
	subscribers, err := s.users.FindMany(types.Contains(types.FieldSubscribedToUserIDs, c.userID))
	if err != nil {
		return types.User{}, fmt.Errorf("finding subscribers: %w", err)
	}
	for _, sub := range subscribers {
		if sub.ID == c.userID {
			continue
		}
		if err := c.unsubscribe(sub.ID); err != nil {
			return types.User{}, err
		}
	}

	// 4. The user row itself
	user, err := s.users.Delete(c.userID)
	if err != nil {
		return types.User{}, fmt.Errorf("deleting user: %w", err)
	}

	s.logger.Info("user deleted",
		"userId", c.userID,
		"profiles", c.profiles,
		"posts", c.posts,
		"subscribers", c.subscribers,
	)
	return user, nil
}

// deleteProfile and deletePosts take rows out with Remove, so compensation
// puts each one back in its original place in insertion order.
func (c *cascade) deleteProfile(id string) error {
	table := c.svc.profiles
	removed, err := table.Remove(id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	c.undo.record("restoring profile "+id, func() error {
		_, err := table.Restore(removed)
		return err
	})
	c.profiles++
	return nil
}

func (c *cascade) deletePosts(posts []types.Post) error {
	table := c.svc.posts
	for _, post := range posts {
		removed, err := table.Remove(post.ID)
		if err != nil {
			return fmt.Errorf("deleting post: %w", err)
		}
		c.undo.record("restoring post "+post.ID, func() error {
			_, err := table.Restore(removed)
			return err
		})
		c.posts++
	}
	return nil
}

// unsubscribe removes every occurrence of the deleted user from the
// subscriber's list. The subscriber was found by that very entry, so its
// absence means the store changed underneath the cascade.
func (c *cascade) unsubscribe(subscriberID string) error {
	table := c.svc.users
	var before []string
	_, err := table.Change(subscriberID, func(u *types.User) error {
		if !u.SubscribedTo(c.userID) {
			return fmt.Errorf("%w: user %q lists no subscription to %q", types.ErrInvariantViolation, u.ID, c.userID)
		}
		before = slices.Clone(u.SubscribedToUserIDs)
		u.SubscribedToUserIDs = slices.DeleteFunc(u.SubscribedToUserIDs, func(id string) bool {
			return id == c.userID
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("repairing subscriptions of %q: %w", subscriberID, err)
	}
	c.undo.record("restoring subscriptions of "+subscriberID, func() error {
		_, err := table.Change(subscriberID, func(u *types.User) error {
			u.SubscribedToUserIDs = before
			return nil
		})
		return err
	})
	c.subscribers++
	return nil
}

// abort compensates the applied steps and returns the error to report.
func (c *cascade) abort(cause error) error {
	logger := c.svc.logger.With("userId", c.userID)
	if errors.Is(cause, types.ErrInvariantViolation) {
		logger.Error("invariant violated during cascade", "error", cause)
	}

	logger.Warn("rolling back cascade", "steps", c.undo.len(), "error", cause)
	if err := c.undo.rollback(); err != nil {
		logger.Error("cascade rollback incomplete", "error", err)
		return errors.Join(cause, fmt.Errorf("%w: %w", types.ErrCascadeIncomplete, err))
	}
	return cause
}
