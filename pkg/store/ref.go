package store

import (
	"context"

	"github.com/google/uuid"
)

// Ref points at a child of a collection whose key was generated locally.
type Ref struct {
	store      Store
	collection string
	key        string
}

// Push generates a new child reference under collection. Keys are UUIDv7
// strings, so they sort in creation order. Nothing is written until Set.
func Push(s Store, collection string) Ref {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Ref{store: s, collection: collection, key: id.String()}
}

// Key returns the generated key.
func (r Ref) Key() string {
	return r.key
}

// Path returns the full path of the reference.
func (r Ref) Path() string {
	return Join(r.collection, r.key)
}

// Set writes value at the reference.
func (r Ref) Set(ctx context.Context, value any) error {
	return r.store.Set(ctx, r.Path(), value)
}
