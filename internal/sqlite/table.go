package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Table implements types.Table for a single entity type on top of the
// backend's SQLite connection. Filters are translated to SQL; sequence
// fields are JSON arrays queried through json_each.
type Table[T types.Entity[T]] struct {
	db    *sql.DB
	codec codec[T]
	newID func() string

	// mu serializes writers so Change is an atomic read-modify-write.
	mu sync.RWMutex
}

func newTable[T types.Entity[T]](db *sql.DB, c codec[T], newID func() string) *Table[T] {
	return &Table[T]{db: db, codec: c, newID: newID}
}

// FindMany returns rows matching filters, ordered by insertion.
func (t *Table[T]) FindMany(filters ...types.Filter) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.query(filters, 0)
}

// FindOne returns the first row matching filters.
func (t *Table[T]) FindOne(filters ...types.Filter) (T, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	rows, err := t.query(filters, 1)
	if err != nil {
		return zero, false, err
	}
	if len(rows) == 0 {
		return zero, false, nil
	}
	return rows[0], true, nil
}

// Create assigns a UUID v7 and inserts the row.
func (t *Table[T]) Create(row T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	id := t.newID()
	if _, err := t.get(id); err == nil {
		return zero, fmt.Errorf("%s %q: %w", t.codec.table, id, types.ErrConflict)
	} else if !errors.Is(err, types.ErrNotFound) {
		return zero, err
	}
	stored := row.WithID(id)
	if err := t.insertAt(stored, 0); err != nil {
		return zero, err
	}
	return stored.Clone(), nil
}

// Change loads the row, applies mutate, and writes every non-id column back.
func (t *Table[T]) Change(id string, mutate func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	current, err := t.get(id)
	if err != nil {
		return zero, err
	}
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return zero, err
	}
	next = next.WithID(id)

	values, err := t.codec.values(next)
	if err != nil {
		return zero, err
	}
	sets := make([]string, 0, len(t.codec.columns)-1)
	for _, col := range t.codec.columns[1:] {
		sets = append(sets, col+" = ?")
	}
	args := append(values[1:], id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.codec.table, strings.Join(sets, ", "))
	if _, err := t.db.Exec(query, args...); err != nil {
		return zero, fmt.Errorf("updating %s: %w", t.codec.table, err)
	}
	return next.Clone(), nil
}

// Delete removes the row and returns it.
func (t *Table[T]) Delete(id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := t.remove(id)
	return r.Row, err
}

// Remove deletes the row and returns it with its seq.
func (t *Table[T]) Remove(id string) (types.Removed[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remove(id)
}

// Restore reinserts a removed row under its original seq.
func (t *Table[T]) Restore(r types.Removed[T]) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	id := r.Row.EntityID()
	if id == "" {
		return zero, fmt.Errorf("%s: %w: empty id", t.codec.table, types.ErrInvalidIdentifier)
	}
	if r.Seq <= 0 {
		return zero, fmt.Errorf("%s %q: %w: sequence %d", t.codec.table, id, types.ErrInvalidData, r.Seq)
	}
	if _, err := t.get(id); err == nil {
		return zero, fmt.Errorf("%s %q: %w", t.codec.table, id, types.ErrConflict)
	} else if !errors.Is(err, types.ErrNotFound) {
		return zero, err
	}
	var taken int
	if err := t.db.QueryRow(
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE seq = ?", t.codec.table), r.Seq).Scan(&taken); err != nil {
		return zero, fmt.Errorf("checking %s seq: %w", t.codec.table, err)
	}
	if taken > 0 {
		return zero, fmt.Errorf("%s %q: %w: sequence %d is taken", t.codec.table, id, types.ErrConflict, r.Seq)
	}
	if err := t.insertAt(r.Row, r.Seq); err != nil {
		return zero, err
	}
	return r.Row.Clone(), nil
}

// Insert stores row under its own ID.
func (t *Table[T]) Insert(row T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	id := row.EntityID()
	if id == "" {
		return zero, fmt.Errorf("%s: %w: empty id", t.codec.table, types.ErrInvalidIdentifier)
	}
	if _, err := t.get(id); err == nil {
		return zero, fmt.Errorf("%s %q: %w", t.codec.table, id, types.ErrConflict)
	} else if !errors.Is(err, types.ErrNotFound) {
		return zero, err
	}
	if err := t.insertAt(row, 0); err != nil {
		return zero, err
	}
	return row.Clone(), nil
}

// get loads one row by id. The caller must hold t.mu.
func (t *Table[T]) get(id string) (T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?",
		strings.Join(t.codec.columns, ", "), t.codec.table)
	row, err := t.codec.scan(t.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", t.codec.table, id, types.ErrNotFound)
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("scanning %s: %w", t.codec.table, err)
	}
	return row, nil
}

// remove deletes one row and reports its seq. The caller must hold t.mu.
func (t *Table[T]) remove(id string) (types.Removed[T], error) {
	row, err := t.get(id)
	if err != nil {
		return types.Removed[T]{}, err
	}
	var seq int64
	if err := t.db.QueryRow(
		fmt.Sprintf("DELETE FROM %s WHERE id = ? RETURNING seq", t.codec.table), id).Scan(&seq); err != nil {
		return types.Removed[T]{}, fmt.Errorf("deleting %s: %w", t.codec.table, err)
	}
	return types.Removed[T]{Row: row, Seq: seq}, nil
}

// insertAt writes a new row. seq 0 lets SQLite assign the next one. The
// caller must hold t.mu.
func (t *Table[T]) insertAt(row T, seq int64) error {
	values, err := t.codec.values(row)
	if err != nil {
		return err
	}
	columns := t.codec.columns
	if seq > 0 {
		columns = append([]string{"seq"}, columns...)
		values = append([]any{seq}, values...)
	}
	placeholders := make([]string, len(values))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.codec.table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	if _, err := t.db.Exec(query, values...); err != nil {
		return fmt.Errorf("inserting %s: %w", t.codec.table, err)
	}
	return nil
}

// query runs a filtered select. limit <= 0 means no limit. The caller must
// hold t.mu.
func (t *Table[T]) query(filters []types.Filter, limit int) ([]T, error) {
	where, args, err := t.where(filters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.codec.table, err)
	}
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY seq",
		strings.Join(t.codec.columns, ", "), t.codec.table, where)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := t.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.codec.table, err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		row, err := t.codec.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.codec.table, err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// where translates filters into a WHERE clause and its arguments.
func (t *Table[T]) where(filters []types.Filter) (string, []any, error) {
	var conditions []string
	var args []any

	for _, f := range filters {
		if err := f.Validate(); err != nil {
			return "", nil, err
		}
		col, ok := t.codec.fields[f.Key]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown field %q", types.ErrInvalidFilter, f.Key)
		}
		list := t.codec.lists[f.Key]
		if t.codec.integers[f.Key] {
			// Match the text form Field reports, not a coerced number.
			col = "CAST(" + col + " AS TEXT)"
		}

		switch f.Op {
		case types.OpEquals:
			if list {
				return "", nil, fmt.Errorf("%w: %q is not a scalar field", types.ErrInvalidFilter, f.Key)
			}
			conditions = append(conditions, col+" = ?")
			args = append(args, f.Values[0])
		case types.OpAnyOf:
			if list {
				return "", nil, fmt.Errorf("%w: %q is not a scalar field", types.ErrInvalidFilter, f.Key)
			}
			if len(f.Values) == 0 {
				conditions = append(conditions, "0")
				continue
			}
			placeholders := make([]string, len(f.Values))
			for i, v := range f.Values {
				placeholders[i] = "?"
				args = append(args, v)
			}
			conditions = append(conditions, col+" IN ("+strings.Join(placeholders, ",")+")")
		case types.OpContains:
			if !list {
				return "", nil, fmt.Errorf("%w: %q is not a sequence field", types.ErrInvalidFilter, f.Key)
			}
			conditions = append(conditions, fmt.Sprintf(
				"EXISTS (SELECT 1 FROM json_each(%s.%s) WHERE json_each.value = ?)", t.codec.table, col))
			args = append(args, f.Values[0])
		}
	}

	if len(conditions) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}
