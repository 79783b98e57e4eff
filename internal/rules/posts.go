package rules

import (
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// PostInput carries the fields of a new Post.
type PostInput struct {
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostPatch lists the Post fields to replace.
type PostPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// CreatePost stores a new Post. With EnforcePostOwner set, an unknown userId
// is ErrInvalidReference; otherwise the userId is stored as given.
func (s *Service) CreatePost(in PostInput) (types.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.EnforcePostOwner {
		if err := s.requireUser(in.UserID); err != nil {
			return types.Post{}, err
		}
	}

	post, err := s.posts.Create(types.Post{
		UserID:  in.UserID,
		Title:   in.Title,
		Content: in.Content,
	})
	if err != nil {
		return types.Post{}, fmt.Errorf("creating post: %w", err)
	}
	s.logger.Debug("post created", "postId", post.ID, "userId", post.UserID)
	return post, nil
}

// GetPost returns the Post with the given id.
func (s *Service) GetPost(id string) (types.Post, error) {
	if err := types.ValidateID(id); err != nil {
		return types.Post{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	post, ok, err := s.posts.FindOne(types.Equals(types.FieldID, id))
	if err != nil {
		return types.Post{}, err
	}
	if !ok {
		return types.Post{}, fmt.Errorf("post %q: %w", id, types.ErrNotFound)
	}
	return post, nil
}

// ListPosts returns Posts matching every filter, in insertion order.
func (s *Service) ListPosts(filters ...types.Filter) ([]types.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts.FindMany(filters...)
}

// PatchPost merges the non-nil fields of patch into the Post.
func (s *Service) PatchPost(id string, patch PostPatch) (types.Post, error) {
	if err := types.ValidateID(id); err != nil {
		return types.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.posts.Change(id, func(p *types.Post) error {
		setIf(&p.Title, patch.Title)
		setIf(&p.Content, patch.Content)
		return nil
	})
}

// DeletePost removes the Post and returns it.
func (s *Service) DeletePost(id string) (types.Post, error) {
	if err := types.ValidateID(id); err != nil {
		return types.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.posts.Delete(id)
}
