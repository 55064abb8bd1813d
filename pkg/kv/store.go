// Package kv provides a generic thread-safe key-value store with optional
// FIFO eviction.
package kv

import "sync"

// Store is a thread-safe generic key-value store. When capacity is positive
// the oldest inserted key is evicted once the store is full.
type Store[K comparable, V any] struct {
	mu       sync.RWMutex
	data     map[K]V
	order    []K
	capacity int
}

// New creates a store holding at most capacity entries. A capacity of zero
// or less means unbounded.
func New[K comparable, V any](capacity int) *Store[K, V] {
	return &Store[K, V]{
		data:     make(map[K]V),
		capacity: capacity,
	}
}

// Get retrieves a value by key.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a value by key. Overwriting an existing key keeps its position
// in the eviction order.
func (s *Store[K, V]) Set(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists {
		if s.capacity > 0 && len(s.data) >= s.capacity {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.data, oldest)
		}
		s.order = append(s.order, key)
	}
	s.data[key] = value
}

// Delete removes a key from the store.
func (s *Store[K, V]) Delete(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Clear removes all entries from the store.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[K]V)
	s.order = nil
}

// Len returns the number of items in the store.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
