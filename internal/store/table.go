// Package store provides the in-memory record table shared by the user and
// product services. Each table owns its map and serializes every access.
package store

import (
	"errors"
	"net/http"
	"sync"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrConflict     = errors.New("record already exists")
	ErrInvalid      = errors.New("invalid request")
	ErrUnauthorized = errors.New("credentials do not match")
)

// Table is a single-owner map of id -> record guarded by one mutex.
// Records are stored by value, so callers never share memory with the table.
type Table[T any] struct {
	mu   sync.Mutex
	rows map[int]T
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[int]T)}
}

func (t *Table[T]) Get(id int) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

// Insert stores v under id unless the id is already taken.
func (t *Table[T]) Insert(id int, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; ok {
		return ErrConflict
	}
	t.rows[id] = v
	return nil
}

// Update runs fn on the current record while holding the lock and stores the
// result. If fn returns an error the stored record is left untouched.
func (t *Table[T]) Update(id int, fn func(cur T) (T, error)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	cur, ok := t.rows[id]
	if !ok {
		return zero, ErrNotFound
	}
	next, err := fn(cur)
	if err != nil {
		return zero, err
	}
	t.rows[id] = next
	return next, nil
}

// Delete removes the record once check accepts it. A nil check always accepts.
func (t *Table[T]) Delete(id int, check func(cur T) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.rows[id]
	if !ok {
		return ErrNotFound
	}
	if check != nil {
		if err := check(cur); err != nil {
			return err
		}
	}
	delete(t.rows, id)
	return nil
}

func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// StatusFor maps store errors to the HTTP status the entity endpoints answer with.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
