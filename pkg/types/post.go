package types

// Post filter keys.
const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// Post is a piece of content owned by one user.
type Post struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (p Post) EntityID() string { return p.ID }

func (p Post) WithID(id string) Post {
	p.ID = id
	return p
}

func (p Post) Clone() Post { return p }

func (p Post) Field(key string) (any, bool) {
	switch key {
	case FieldID:
		return p.ID, true
	case FieldUserID:
		return p.UserID, true
	case FieldTitle:
		return p.Title, true
	case FieldContent:
		return p.Content, true
	}
	return nil, false
}
