package sqlite

// Schema DDL for all tables. seq preserves insertion order; id carries the
// entity identifier. Cross-table references are plain TEXT columns: the
// rules layer, not SQLite, keeps them consistent.
const (
	createUsers = `CREATE TABLE users (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    subscribed_to_user_ids TEXT NOT NULL DEFAULT '[]'
);`

	createProfiles = `CREATE TABLE profiles (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL,
    avatar TEXT NOT NULL,
    birthday INTEGER NOT NULL,
    city TEXT NOT NULL,
    country TEXT NOT NULL,
    member_type_id TEXT NOT NULL,
    sex TEXT NOT NULL,
    street TEXT NOT NULL
);`

	createPosts = `CREATE TABLE posts (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL
);`

	createMemberTypes = `CREATE TABLE member_types (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    discount TEXT NOT NULL,
    month_posts_limit INTEGER NOT NULL
);`
)

// Index DDL for the lookups the cascade performs.
const (
	idxProfilesUser = `CREATE INDEX idx_profiles_user ON profiles(user_id);`
	idxPostsUser    = `CREATE INDEX idx_posts_user ON posts(user_id);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createUsers,
	createProfiles,
	createPosts,
	createMemberTypes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxProfilesUser,
	idxPostsUser,
}
