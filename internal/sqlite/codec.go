package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// codec maps one entity type onto its SQLite table.
type codec[T types.Entity[T]] struct {
	table string

	// columns lists the stored columns in scan order; columns[0] is id.
	columns []string

	// fields maps filter keys to columns.
	fields map[string]string

	// lists marks filter keys whose column holds a JSON array.
	lists map[string]bool

	// integers marks filter keys whose column holds an INTEGER.
	integers map[string]bool

	scan   func(scanner) (T, error)
	values func(T) ([]any, error)
}

var userCodec = codec[types.User]{
	table:   types.UsersTable,
	columns: []string{"id", "first_name", "last_name", "email", "subscribed_to_user_ids"},
	fields: map[string]string{
		types.FieldID:                  "id",
		types.FieldFirstName:           "first_name",
		types.FieldLastName:            "last_name",
		types.FieldEmail:               "email",
		types.FieldSubscribedToUserIDs: "subscribed_to_user_ids",
	},
	lists: map[string]bool{types.FieldSubscribedToUserIDs: true},
	scan: func(row scanner) (types.User, error) {
		var u types.User
		var subs string
		if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &subs); err != nil {
			return u, err
		}
		if err := json.Unmarshal([]byte(subs), &u.SubscribedToUserIDs); err != nil {
			return u, fmt.Errorf("parsing subscribed_to_user_ids: %w", err)
		}
		return u.Clone(), nil
	},
	values: func(u types.User) ([]any, error) {
		subs := u.SubscribedToUserIDs
		if subs == nil {
			subs = []string{}
		}
		subsJSON, err := json.Marshal(subs)
		if err != nil {
			return nil, fmt.Errorf("marshaling subscribed_to_user_ids: %w", err)
		}
		return []any{u.ID, u.FirstName, u.LastName, u.Email, string(subsJSON)}, nil
	},
}

var profileCodec = codec[types.Profile]{
	table: types.ProfilesTable,
	columns: []string{
		"id", "user_id", "avatar", "birthday", "city",
		"country", "member_type_id", "sex", "street",
	},
	fields: map[string]string{
		types.FieldID:           "id",
		types.FieldUserID:       "user_id",
		types.FieldAvatar:       "avatar",
		types.FieldBirthday:     "birthday",
		types.FieldCity:         "city",
		types.FieldCountry:      "country",
		types.FieldMemberTypeID: "member_type_id",
		types.FieldSex:          "sex",
		types.FieldStreet:       "street",
	},
	integers: map[string]bool{types.FieldBirthday: true},
	scan: func(row scanner) (types.Profile, error) {
		var p types.Profile
		err := row.Scan(&p.ID, &p.UserID, &p.Avatar, &p.Birthday, &p.City,
			&p.Country, &p.MemberTypeID, &p.Sex, &p.Street)
		return p, err
	},
	values: func(p types.Profile) ([]any, error) {
		return []any{p.ID, p.UserID, p.Avatar, p.Birthday, p.City,
			p.Country, p.MemberTypeID, p.Sex, p.Street}, nil
	},
}

var postCodec = codec[types.Post]{
	table:   types.PostsTable,
	columns: []string{"id", "user_id", "title", "content"},
	fields: map[string]string{
		types.FieldID:      "id",
		types.FieldUserID:  "user_id",
		types.FieldTitle:   "title",
		types.FieldContent: "content",
	},
	scan: func(row scanner) (types.Post, error) {
		var p types.Post
		err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content)
		return p, err
	},
	values: func(p types.Post) ([]any, error) {
		return []any{p.ID, p.UserID, p.Title, p.Content}, nil
	},
}

var memberTypeCodec = codec[types.MemberType]{
	table:   types.MemberTypesTable,
	columns: []string{"id", "discount", "month_posts_limit"},
	fields: map[string]string{
		types.FieldID:              "id",
		types.FieldDiscount:        "discount",
		types.FieldMonthPostsLimit: "month_posts_limit",
	},
	integers: map[string]bool{types.FieldMonthPostsLimit: true},
	scan: func(row scanner) (types.MemberType, error) {
		var m types.MemberType
		err := row.Scan(&m.ID, &m.Discount, &m.MonthPostsLimit)
		return m, err
	},
	values: func(m types.MemberType) ([]any, error) {
		return []any{m.ID, m.Discount.String(), m.MonthPostsLimit}, nil
	},
}
