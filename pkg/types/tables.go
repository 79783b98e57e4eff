package types

// Standard table names.
const (
	UsersTable       = "users"
	ProfilesTable    = "profiles"
	PostsTable       = "posts"
	MemberTypesTable = "member_types"
)

// Filter keys shared by several entities.
const (
	FieldID     = "id"
	FieldUserID = "userId"
)
