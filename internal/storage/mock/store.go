// Package storagemock is an in-memory persistence adapter for tests.
package storagemock

import (
	"context"
	"sync"

	"github.com/Mitch2826/Hostel-Hunt/internal/serviceerr"
	"github.com/Mitch2826/Hostel-Hunt/internal/storage"
)

type StoreOption func(*Store)

type Store struct {
	mu     sync.Mutex
	values map[string]string

	getErr, setErr, deleteErr error
}

func WithValue(key, value string) StoreOption {
	return func(s *Store) { s.values[key] = value }
}

func WithGetError(err error) StoreOption {
	return func(s *Store) { s.getErr = err }
}

func WithSetError(err error) StoreOption {
	return func(s *Store) { s.setErr = err }
}

func WithDeleteError(err error) StoreOption {
	return func(s *Store) { s.deleteErr = err }
}

var _ = storage.Store(&Store{})

func New(opts ...StoreOption) *Store {
	s := &Store{
		values: make(map[string]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", serviceerr.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Value reads a key without the error injection, for assertions.
func (s *Store) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	return value, ok
}
