// Package store holds the in-memory application state. All changes go
// through Dispatch, which applies the pure Reduce function.
package store

import (
	"sync"

	"github.com/foundersandcoders/lift/internal/models"
)

// Listener is called after every dispatch with the new snapshot.
type Listener func(Snapshot)

// Store serializes dispatches over a single snapshot.
type Store struct {
	mu        sync.RWMutex
	state     Snapshot
	listeners []Listener
}

// New creates a store seeded with initial.
func New(initial Snapshot) *Store {
	return &Store{state: initial.clone()}
}

// State returns a copy of the current snapshot.
func (s *Store) State() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Dispatch applies the action and notifies listeners.
func (s *Store) Dispatch(a Action) Snapshot {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state.clone()
	listeners := append([]Listener{}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(next.clone())
	}
	return next
}

// Subscribe registers a listener. The returned func unregisters it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = func(Snapshot) {}
		}
	}
}

// SeedDefaults loads entries only when the store holds none. It reports
// whether the seed was applied.
func (s *Store) SeedDefaults(entries []models.Entry) bool {
	if len(s.State().Entries) > 0 {
		return false
	}
	s.Dispatch(SetEntries{Entries: entries})
	return true
}

// Entry looks up an entry in the current snapshot.
func (s *Store) Entry(id string) (models.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Entry(id)
}
