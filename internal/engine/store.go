package engine

import "sync"

// Store is an append-only, index-addressable buffer holding the published
// prefix of one logical sequence (states or responses). It has a single
// writer (the owning session) and any number of readers. Elements are
// immutable once published, so readers that obtained a prefix keep a
// consistent view no matter how far the sequence grows afterwards.
type Store[T any] struct {
	mu  sync.RWMutex
	buf []T
}

// NewStore creates an empty store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Append publishes the next element of the sequence.
// Only the owning session may call this.
func (s *Store[T]) Append(v T) {
	s.mu.Lock()
	s.buf = append(s.buf, v)
	s.mu.Unlock()
}

// Len returns the number of published elements.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buf)
}

// At returns the element at index i, if it has been published.
func (s *Store[T]) At(i int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.buf) {
		var zero T
		return zero, false
	}
	return s.buf[i], true
}

// Last returns the most recently published element.
func (s *Store[T]) Last() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.buf) == 0 {
		var zero T
		return zero, false
	}
	return s.buf[len(s.buf)-1], true
}

// Prefix returns the full published prefix. The returned slice header is
// stable: later appends never mutate the elements visible through it.
// Callers must treat it as read-only.
func (s *Store[T]) Prefix() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buf[:len(s.buf):len(s.buf)]
}
