package memory

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Table is an in-memory types.Table for one entity type. Rows are kept in a
// map keyed by ID; every row carries a sequence number and order lists the
// IDs sorted by it. Reads share the lock; every write, including the
// read-modify-write in Change, holds it exclusively.
type Table[T types.Entity[T]] struct {
	name  string
	newID func() string

	mu    sync.RWMutex
	rows  map[string]T
	seqs  map[string]int64
	order []string
	last  int64
}

// NewTable creates an empty table. newID generates IDs for Create.
func NewTable[T types.Entity[T]](name string, newID func() string) *Table[T] {
	return &Table[T]{
		name:  name,
		newID: newID,
		rows:  make(map[string]T),
		seqs:  make(map[string]int64),
	}
}

func (t *Table[T]) FindMany(filters ...types.Filter) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := []T{}
	for _, id := range t.order {
		row := t.rows[id]
		ok, err := types.Match(row, filters)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.name, err)
		}
		if ok {
			result = append(result, row.Clone())
		}
	}
	return result, nil
}

func (t *Table[T]) FindOne(filters ...types.Filter) (T, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	for _, id := range t.order {
		row := t.rows[id]
		ok, err := types.Match(row, filters)
		if err != nil {
			return zero, false, fmt.Errorf("%s: %w", t.name, err)
		}
		if ok {
			return row.Clone(), true, nil
		}
	}
	return zero, false, nil
}

func (t *Table[T]) Create(row T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.newID()
	if _, exists := t.rows[id]; exists {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", t.name, id, types.ErrConflict)
	}
	stored := row.WithID(id)
	t.put(stored)
	return stored.Clone(), nil
}

func (t *Table[T]) Change(id string, mutate func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	current, ok := t.rows[id]
	if !ok {
		return zero, fmt.Errorf("%s %q: %w", t.name, id, types.ErrNotFound)
	}
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return zero, err
	}
	next = next.WithID(id)
	t.rows[id] = next
	return next.Clone(), nil
}

func (t *Table[T]) Delete(id string) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	r, err := t.remove(id)
	return r.Row, err
}

func (t *Table[T]) Insert(row T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	id := row.EntityID()
	if id == "" {
		return zero, fmt.Errorf("%s: %w: empty id", t.name, types.ErrInvalidIdentifier)
	}
	if _, exists := t.rows[id]; exists {
		return zero, fmt.Errorf("%s %q: %w", t.name, id, types.ErrConflict)
	}
	stored := row.Clone()
	t.put(stored)
	return stored.Clone(), nil
}

func (t *Table[T]) Remove(id string) (types.Removed[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remove(id)
}

func (t *Table[T]) Restore(r types.Removed[T]) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	id := r.Row.EntityID()
	if id == "" {
		return zero, fmt.Errorf("%s: %w: empty id", t.name, types.ErrInvalidIdentifier)
	}
	if r.Seq <= 0 {
		return zero, fmt.Errorf("%s %q: %w: sequence %d", t.name, id, types.ErrInvalidData, r.Seq)
	}
	if _, exists := t.rows[id]; exists {
		return zero, fmt.Errorf("%s %q: %w", t.name, id, types.ErrConflict)
	}
	i, taken := t.position(r.Seq)
	if taken {
		return zero, fmt.Errorf("%s %q: %w: sequence %d is taken", t.name, id, types.ErrConflict, r.Seq)
	}

	stored := r.Row.Clone()
	t.rows[id] = stored
	t.seqs[id] = r.Seq
	t.order = slices.Insert(t.order, i, id)
	t.last = max(t.last, r.Seq)
	return stored.Clone(), nil
}

// put appends a row the caller owns. The caller must hold t.mu.
func (t *Table[T]) put(row T) {
	t.last++
	id := row.EntityID()
	t.rows[id] = row
	t.seqs[id] = t.last
	t.order = append(t.order, id)
}

// remove drops the row with the given ID. The caller must hold t.mu.
func (t *Table[T]) remove(id string) (types.Removed[T], error) {
	row, ok := t.rows[id]
	if !ok {
		return types.Removed[T]{}, fmt.Errorf("%s %q: %w", t.name, id, types.ErrNotFound)
	}
	seq := t.seqs[id]
	if i, found := t.position(seq); found {
		t.order = slices.Delete(t.order, i, i+1)
	}
	delete(t.rows, id)
	delete(t.seqs, id)
	return types.Removed[T]{Row: row, Seq: seq}, nil
}

// position finds seq in order. The caller must hold t.mu.
func (t *Table[T]) position(seq int64) (int, bool) {
	return slices.BinarySearchFunc(t.order, seq, func(id string, target int64) int {
		return cmp.Compare(t.seqs[id], target)
	})
}

// reset drops every row. The caller must hold no table lock.
func (t *Table[T]) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = make(map[string]T)
	t.seqs = make(map[string]int64)
	t.order = nil
	t.last = 0
}
