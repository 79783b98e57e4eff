package types

// Table provides uniform CRUD operations for a single entity type.
// Rows are returned by value and never share memory with the stored copy.
type Table[T any] interface {
	// FindMany returns every row matching all filters, in insertion order.
	// No filters returns every row.
	FindMany(filters ...Filter) ([]T, error)

	// FindOne returns the first row matching all filters. A missing row is
	// reported through ok, not through err.
	FindOne(filters ...Filter) (row T, ok bool, err error)

	// Create assigns a new ID to row, stores it, and returns the stored row.
	Create(row T) (T, error)

	// Change applies mutate to a copy of the row with the given ID and stores
	// the result. The ID cannot be changed. Returns ErrNotFound if no row
	// exists; an error from mutate aborts the change and is returned as is.
	Change(id string, mutate func(*T) error) (T, error)

	// Delete removes and returns the row with the given ID.
	// Returns ErrNotFound if no row exists.
	Delete(id string) (T, error)

	// Insert stores row under its existing ID. Returns ErrConflict if the ID
	// is taken and ErrInvalidIdentifier if it is empty.
	Insert(row T) (T, error)

	// Remove deletes the row with the given ID like Delete and also reports
	// the position it held in insertion order.
	Remove(id string) (Removed[T], error)

	// Restore puts a row returned by Remove on this table back at its
	// original position. Returns ErrConflict if the ID or the position has
	// been taken since.
	Restore(r Removed[T]) (T, error)
}

// Removed is a row taken out of a table together with its insertion
// sequence number. The number is only meaningful to the table that issued it.
type Removed[T any] struct {
	Row T
	Seq int64
}

// Tables groups the four typed tables of a Cupboard.
type Tables struct {
	Users       Table[User]
	Profiles    Table[Profile]
	Posts       Table[Post]
	MemberTypes Table[MemberType]
}

// Entity is the constraint satisfied by every stored row type. T is the row
// type itself, so WithID and Clone return concrete values.
type Entity[T any] interface {
	// EntityID returns the row's identifier.
	EntityID() string

	// WithID returns a copy of the row carrying id.
	WithID(id string) T

	// Clone returns a deep copy of the row.
	Clone() T

	// Field returns the value stored under a filter key. Scalar fields are
	// returned as string, sequence fields as []string.
	Field(key string) (any, bool)
}
