package types

import "slices"

// User filter keys.
const (
	FieldFirstName           = "firstName"
	FieldLastName            = "lastName"
	FieldEmail               = "email"
	FieldSubscribedToUserIDs = "subscribedToUserIds"
)

// User is the root entity. A user owns at most one profile and any number of
// posts, and keeps the ordered list of users it subscribes to.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`

	// SubscribedToUserIDs may hold the same ID more than once; each
	// subscribe call appends one entry.
	SubscribedToUserIDs []string `json:"subscribedToUserIds"`
}

func (u User) EntityID() string { return u.ID }

func (u User) WithID(id string) User {
	c := u.Clone()
	c.ID = id
	return c
}

func (u User) Clone() User {
	c := u
	c.SubscribedToUserIDs = slices.Clone(u.SubscribedToUserIDs)
	if c.SubscribedToUserIDs == nil {
		c.SubscribedToUserIDs = []string{}
	}
	return c
}

func (u User) Field(key string) (any, bool) {
	switch key {
	case FieldID:
		return u.ID, true
	case FieldFirstName:
		return u.FirstName, true
	case FieldLastName:
		return u.LastName, true
	case FieldEmail:
		return u.Email, true
	case FieldSubscribedToUserIDs:
		return slices.Clone(u.SubscribedToUserIDs), true
	}
	return nil, false
}

// SubscribedTo reports whether the user currently holds at least one
// subscription to id.
func (u User) SubscribedTo(id string) bool {
	return slices.Contains(u.SubscribedToUserIDs, id)
}
