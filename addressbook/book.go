// Package addressbook keeps ordered collections of records in which at most one
// record is the default.
package addressbook

import (
	"fmt"
	"sync"
	"time"

	"github.com/tebele-dev/tailor-made-couture/apperrors"
)

// Record is implemented by value types that can live in a Book.
type Record[T any] interface {
	RecordID() string
	IsDefaultRecord() bool
	WithDefault(bool) T
	WithID(string) T
}

type Book[T Record[T]] struct {
	mu    sync.RWMutex
	items []T
}

// New builds a book from existing records, normalizing the default flag.
func New[T Record[T]](items ...T) *Book[T] {
	b := &Book[T]{items: append([]T(nil), items...)}
	b.normalize()
	return b
}

// Add appends rec. It becomes the default when the book was empty or when
// makeDefault is set; either way every other default is cleared.
func (b *Book[T]) Add(rec T, makeDefault bool) T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(rec, makeDefault)
}

// AddStamped assigns rec the id prefix_<unixmillis of at>, stepping forward one
// millisecond at a time past ids already in the book, and then adds it.
func (b *Book[T]) AddStamped(prefix string, at time.Time, rec T, makeDefault bool) T {
	b.mu.Lock()
	defer b.mu.Unlock()

	ms := at.UnixMilli()
	id := fmt.Sprintf("%s_%d", prefix, ms)
	for b.indexOf(id) >= 0 {
		ms++
		id = fmt.Sprintf("%s_%d", prefix, ms)
	}
	return b.addLocked(rec.WithID(id), makeDefault)
}

func (b *Book[T]) addLocked(rec T, makeDefault bool) T {
	if len(b.items) == 0 || makeDefault {
		b.clearDefaults()
		rec = rec.WithDefault(true)
	} else {
		rec = rec.WithDefault(false)
	}
	b.items = append(b.items, rec)
	return rec
}

// Update replaces the record with the same id.
func (b *Book[T]) Update(rec T) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(rec.RecordID())
	if i < 0 {
		var zero T
		return zero, apperrors.NotFound("Record not found")
	}
	if rec.IsDefaultRecord() {
		b.clearDefaults()
	}
	b.items[i] = rec
	b.normalize()
	return b.items[i], nil
}

// Delete removes the record with id. If no default remains the first record is promoted.
func (b *Book[T]) Delete(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return apperrors.NotFound("Record not found")
	}
	b.items = append(b.items[:i], b.items[i+1:]...)
	b.normalize()
	return nil
}

func (b *Book[T]) SetDefault(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return apperrors.NotFound("Record not found")
	}
	b.clearDefaults()
	b.items[i] = b.items[i].WithDefault(true)
	return nil
}

func (b *Book[T]) Get(id string) (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.indexOf(id); i >= 0 {
		return b.items[i], true
	}
	var zero T
	return zero, false
}

func (b *Book[T]) Default() (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, it := range b.items {
		if it.IsDefaultRecord() {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (b *Book[T]) All() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]T(nil), b.items...)
}

func (b *Book[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

func (b *Book[T]) indexOf(id string) int {
	for i, it := range b.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

func (b *Book[T]) clearDefaults() {
	for i, it := range b.items {
		if it.IsDefaultRecord() {
			b.items[i] = it.WithDefault(false)
		}
	}
}

// normalize keeps exactly one default whenever the book is non-empty.
func (b *Book[T]) normalize() {
	seen := false
	for i, it := range b.items {
		if it.IsDefaultRecord() {
			if seen {
				b.items[i] = it.WithDefault(false)
			}
			seen = true
		}
	}
	if !seen && len(b.items) > 0 {
		b.items[0] = b.items[0].WithDefault(true)
	}
}
