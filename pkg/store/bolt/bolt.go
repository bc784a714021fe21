// Package bolt provides a store backend on a single bbolt file. Each
// collection is a bucket and each child a JSON value under its key.
package bolt

import (
	"context"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/store"
)

// Name is the backend name used with store.Open.
const Name = "bolt"

func init() {
	store.Register(Name, func(_ context.Context, cfg store.Config) (store.Store, error) {
		return Open(cfg.Path)
	})
}

// Store is a bbolt-backed store.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.NewConfigError("store", "bolt backend requires a file path", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", filepath.Dir(path), err)
	}

	db, err := bbolt.Open(path, constants.SecureFilePermissions, &bbolt.Options{Timeout: constants.BoltOpenTimeout})
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	return &Store{db: db}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
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

	var data []byte
	err = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(collection))
		if b == nil {
			return nil
		}
		if key != "" {
			if v := b.Get([]byte(key)); v != nil {
				data = append([]byte(nil), v...)
			}
			return nil
		}

		children := make(map[string][]byte)
		if err := b.ForEach(func(k, v []byte) error {
			children[string(k)] = append([]byte(nil), v...)
			return nil
		}); err != nil {
			return err
		}
		data, err = store.Collect(children)
		return err
	})
	if err != nil {
		return store.Snapshot{}, errors.WrapIO("read", path, err)
	}

	if key == "" {
		return store.NewSnapshot(collection, data), nil
	}
	return store.NewSnapshot(key, data), nil
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
		return s.update(path, func(tx *bbolt.Tx) error {
			if err := deleteBucket(tx, collection); err != nil {
				return err
			}
			if len(children) == 0 {
				return nil
			}
			b, err := tx.CreateBucket([]byte(collection))
			if err != nil {
				return err
			}
			for k, v := range children {
				if err := b.Put([]byte(k), v); err != nil {
					return err
				}
			}
			return nil
		})
	}

	data, null, err := store.Encode(value)
	if err != nil {
		return err
	}
	return s.update(path, func(tx *bbolt.Tx) error {
		if null {
			return deleteKey(tx, collection, key)
		}
		b, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

// Update implements store.Store. The merge reads and writes the child in
// one transaction.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	collection, key, err := store.Split(path)
	if err != nil {
		return err
	}

	return s.update(path, func(tx *bbolt.Tx) error {
		if key == "" {
			for child, value := range fields {
				data, null, err := store.Encode(value)
				if err != nil {
					return err
				}
				if null {
					if err := deleteKey(tx, collection, child); err != nil {
						return err
					}
					continue
				}
				b, err := tx.CreateBucketIfNotExists([]byte(collection))
				if err != nil {
					return err
				}
				if err := b.Put([]byte(child), data); err != nil {
					return err
				}
			}
			return nil
		}

		var existing []byte
		if b := tx.Bucket([]byte(collection)); b != nil {
			existing = b.Get([]byte(key))
		}
		merged, err := store.Merge(existing, fields)
		if err != nil {
			return err
		}
		if merged == nil {
			return deleteKey(tx, collection, key)
		}
		b, err := tx.CreateBucketIfNotExists([]byte(collection))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), merged)
	})
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

	return s.update(path, func(tx *bbolt.Tx) error {
		if key == "" {
			return deleteBucket(tx, collection)
		}
		return deleteKey(tx, collection, key)
	})
}

// Ping implements store.Pinger.
func (s *Store) Ping(_ context.Context) error {
	return s.db.View(func(_ *bbolt.Tx) error {
		return nil
	})
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) update(path string, fn func(tx *bbolt.Tx) error) error {
	if err := s.db.Update(fn); err != nil {
		if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
			return store.ErrClosed
		}
		var verr *errors.ValidationError
		if errors.As(err, &verr) {
			return err
		}
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func deleteBucket(tx *bbolt.Tx, collection string) error {
	if tx.Bucket([]byte(collection)) == nil {
		return nil
	}
	return tx.DeleteBucket([]byte(collection))
}

// deleteKey removes a child and drops the bucket once it is empty, so an
// empty collection reads as absent.
func deleteKey(tx *bbolt.Tx, collection, key string) error {
	b := tx.Bucket([]byte(collection))
	if b == nil {
		return nil
	}
	if err := b.Delete([]byte(key)); err != nil {
		return err
	}
	if k, _ := b.Cursor().First(); k == nil {
		return tx.DeleteBucket([]byte(collection))
	}
	return nil
}
