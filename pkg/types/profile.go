package types

import "strconv"

// Profile filter keys.
const (
	FieldAvatar       = "avatar"
	FieldBirthday     = "birthday"
	FieldCity         = "city"
	FieldCountry      = "country"
	FieldMemberTypeID = "memberTypeId"
	FieldSex          = "sex"
	FieldStreet       = "street"
)

// Profile holds the personal details of exactly one user.
type Profile struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Avatar string `json:"avatar"`

	// Birthday is a Unix timestamp in milliseconds.
	Birthday int64 `json:"birthday"`

	City         string `json:"city"`
	Country      string `json:"country"`
	MemberTypeID string `json:"memberTypeId"`
	Sex          string `json:"sex"`
	Street       string `json:"street"`
}

func (p Profile) EntityID() string { return p.ID }

func (p Profile) WithID(id string) Profile {
	p.ID = id
	return p
}

func (p Profile) Clone() Profile { return p }

func (p Profile) Field(key string) (any, bool) {
	switch key {
	case FieldID:
		return p.ID, true
	case FieldUserID:
		return p.UserID, true
	case FieldAvatar:
		return p.Avatar, true
	case FieldBirthday:
		return strconv.FormatInt(p.Birthday, 10), true
	case FieldCity:
		return p.City, true
	case FieldCountry:
		return p.Country, true
	case FieldMemberTypeID:
		return p.MemberTypeID, true
	case FieldSex:
		return p.Sex, true
	case FieldStreet:
		return p.Street, true
	}
	return nil, false
}
