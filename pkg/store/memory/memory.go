// Package memory provides an in-process store backend. Values are kept as
// JSON bytes so callers never share memory with the store.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/agentstation/retroshelf/pkg/store"
)

// Name is the backend name used with store.Open.
const Name = "memory"

func init() {
	store.Register(Name, func(_ context.Context, _ store.Config) (store.Store, error) {
		return New(), nil
	})
}

// Store is a mutex-guarded map of collections.
type Store struct {
	mu     sync.RWMutex
	data   map[string]map[string][]byte
	closed bool
}

// New returns an empty store.
func New() *Store {
	return &Store{data: make(map[string]map[string][]byte)}
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, path string) (store.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return store.Snapshot{}, err
	}
	collection, key, err := store.Split(path)
	if err != nil {
		return store.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.Snapshot{}, store.ErrClosed
	}

	if key == "" {
		data, err := store.Collect(s.data[collection])
		if err != nil {
			return store.Snapshot{}, err
		}
		return store.NewSnapshot(collection, data), nil
	}
	return store.NewSnapshot(key, clone(s.data[collection][key])), nil
}

// Set implements store.Store.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	collection, key, err := store.Split(path)
	if err != nil {
		return err
	}

	if key == "" {
		children, err := store.EncodeChildren(value)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return store.ErrClosed
		}
		if len(children) == 0 {
			delete(s.data, collection)
			return nil
		}
		s.data[collection] = children
		return nil
	}

	data, null, err := store.Encode(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if null {
		s.removeLocked(collection, key)
		return nil
	}
	s.bucket(collection)[key] = clone(data)
	return nil
}

// Update implements store.Store.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	collection, key, err := store.Split(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}

	if key == "" {
		for child, value := range fields {
			data, null, err := store.Encode(value)
			if err != nil {
				return err
			}
			if null {
				s.removeLocked(collection, child)
				continue
			}
			s.bucket(collection)[child] = clone(data)
		}
		return nil
	}

	merged, err := store.Merge(s.data[collection][key], fields)
	if err != nil {
		return err
	}
	if merged == nil {
		s.removeLocked(collection, key)
		return nil
	}
	s.bucket(collection)[key] = merged
	return nil
}

// Remove implements store.Store.
func (s *Store) Remove(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	collection, key, err := store.Split(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}
	if key == "" {
		delete(s.data, collection)
		return nil
	}
	s.removeLocked(collection, key)
	return nil
}

// Ping implements store.Pinger.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return store.ErrClosed
	}
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.data = nil
	return nil
}

// Len returns the number of children in a collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[collection])
}

// Dump returns a copy of a collection's raw children.
func (s *Store) Dump(collection string) map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := maps.Clone(s.data[collection])
	for k, v := range out {
		out[k] = clone(v)
	}
	return out
}

func (s *Store) bucket(collection string) map[string][]byte {
	b, ok := s.data[collection]
	if !ok {
		b = make(map[string][]byte)
		s.data[collection] = b
	}
	return b
}

func (s *Store) removeLocked(collection, key string) {
	b, ok := s.data[collection]
	if !ok {
		return
	}
	delete(b, key)
	if len(b) == 0 {
		delete(s.data, collection)
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
