// Package store defines the hierarchical key-value contract the catalog is
// persisted through, plus helpers shared by its backends.
//
// Paths are slash separated. The catalog uses two levels: a collection
// ("items") holding documents under generated keys ("items/<key>").
//
// Backends register themselves by name from their package init, the way
// database/sql drivers do, and are selected with Open:
//
//	import _ "github.com/agentstation/retroshelf/pkg/store/bolt"
//
//	s, err := store.Open(ctx, store.Config{Backend: "bolt", Path: "/tmp/shelf.bolt"})
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/agentstation/retroshelf/pkg/errors"
)

// Store is a hierarchical key-value store.
type Store interface {
	// Get reads the node at path. A missing node yields a snapshot whose
	// Exists reports false, not an error.
	Get(ctx context.Context, path string) (Snapshot, error)

	// Set replaces the node at path. Setting nil removes it.
	Set(ctx context.Context, path string, value any) error

	// Update merges fields into the node at path. Only the given fields
	// are touched; a nil field value deletes that field.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Remove deletes the node at path. Removing a missing node succeeds.
	Remove(ctx context.Context, path string) error

	// Close releases the resources held by the store.
	Close() error
}

// Pinger is implemented by stores that can check their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config selects and configures a backend.
type Config struct {
	// Backend is one of the registered backend names (memory, bolt, sqlite, rtdb).
	Backend string

	// Path is the database file for the file backends.
	Path string

	// URL is the database URL for remote backends.
	URL string

	// Secret is the credential for remote backends.
	Secret string
}

// OpenFunc opens a store for a configuration.
type OpenFunc func(ctx context.Context, cfg Config) (Store, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]OpenFunc)
)

// Register makes a backend available by name. It panics if called twice
// for the same name.
func Register(name string, open OpenFunc) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if open == nil {
		panic("store: Register open func is nil")
	}
	if _, dup := backends[name]; dup {
		panic("store: Register called twice for backend " + name)
	}
	backends[name] = open
}

// Backends returns the sorted names of the registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens the backend named in cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	backendsMu.RLock()
	open, ok := backends[cfg.Backend]
	backendsMu.RUnlock()

	if !ok {
		return nil, &errors.ConfigError{
			Component: "store",
			Message:   fmt.Sprintf("unknown backend %q (available: %v)", cfg.Backend, Backends()),
		}
	}
	return open(ctx, cfg)
}

// Snapshot is the value read from a path.
type Snapshot struct {
	key  string
	data json.RawMessage
}

// NewSnapshot creates a snapshot for the node key holding data.
// Empty data or JSON null means the node is absent.
func NewSnapshot(key string, data []byte) Snapshot {
	return Snapshot{key: key, data: bytes.TrimSpace(data)}
}

// Exists reports whether the node holds a value.
func (s Snapshot) Exists() bool {
	return len(s.data) > 0 && string(s.data) != "null"
}

// Key returns the last segment of the path that was read.
func (s Snapshot) Key() string {
	return s.key
}

// Raw returns the JSON value of the node.
func (s Snapshot) Raw() json.RawMessage {
	return s.data
}

// Decode unmarshals the node into v.
func (s Snapshot) Decode(v any) error {
	if !s.Exists() {
		return errors.ErrNotFound
	}
	return json.Unmarshal(s.data, v)
}

// Children returns the direct children of the node keyed by name.
// An absent node has no children.
func (s Snapshot) Children() (map[string]json.RawMessage, error) {
	children := make(map[string]json.RawMessage)
	if !s.Exists() {
		return children, nil
	}
	if err := json.Unmarshal(s.data, &children); err != nil {
		return nil, errors.WrapParse("json", s.key, err)
	}
	return children, nil
}
