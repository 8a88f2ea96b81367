// Package mockserver is an in-memory implementation of the bird REST service.
// It backs the client tests and the mock-server command for local work.
package mockserver

import (
	"errors"
	"sync"

	"birdbook/internal/bird"

	"github.com/google/uuid"
)

// ErrNotFound is returned for an id that is not in the store.
var ErrNotFound = errors.New("bird not found")

// Store keeps birds in insertion order.
type Store struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]bird.Bird
	newID func() string
}

// NewStore returns an empty store that assigns UUIDs.
func NewStore() *Store {
	return &Store{
		byID:  make(map[string]bird.Bird),
		newID: uuid.NewString,
	}
}

// List returns every bird in creation order.
func (s *Store) List() []bird.Bird {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]bird.Bird, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Get returns the bird with id.
func (s *Store) Get(id string) (bird.Bird, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.byID[id]
	if !ok {
		return bird.Bird{}, ErrNotFound
	}
	return b, nil
}

// Create stores in under a fresh id.
func (s *Store) Create(in bird.Input) bird.Bird {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := in.Normalize().WithID(s.newID())
	s.byID[b.ID] = b
	s.order = append(s.order, b.ID)
	return b
}

// Update replaces the bird with id. The id itself never changes.
func (s *Store) Update(id string, in bird.Input) (bird.Bird, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return bird.Bird{}, ErrNotFound
	}
	b := in.Normalize().WithID(id)
	s.byID[id] = b
	return b, nil
}

// Delete removes the bird with id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored birds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
