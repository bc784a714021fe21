// Package sqlite provides a store backend on a SQLite database using the
// pure Go modernc.org/sqlite driver. Children live in a single nodes table
// keyed by collection and key.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/store"
)

// Name is the backend name used with store.Open.
const Name = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS nodes (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (collection, key)
)`

func init() {
	store.Register(Name, func(ctx context.Context, cfg store.Config) (store.Store, error) {
		return Open(ctx, cfg.Path)
	})
}

// Store is a SQLite-backed store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.NewConfigError("store", "sqlite backend requires a file path", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("mkdir", filepath.Dir(path), err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, constants.SQLiteBusyTimeout)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, errors.WrapIO("migrate", path, err)
	}

	return &Store{db: db}, nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, path string) (store.Snapshot, error) {
	collection, key, err := store.Split(path)
	if err != nil {
		return store.Snapshot{}, err
	}

	if key != "" {
		var value string
		err := s.db.QueryRowContext(ctx,
			`SELECT value FROM nodes WHERE collection = ? AND key = ?`, collection, key,
		).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			return store.NewSnapshot(key, nil), nil
		}
		if err != nil {
			return store.Snapshot{}, s.wrap("read", path, err)
		}
		return store.NewSnapshot(key, []byte(value)), nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM nodes WHERE collection = ?`, collection)
	if err != nil {
		return store.Snapshot{}, s.wrap("read", path, err)
	}
	defer func() { _ = rows.Close() }()

	children := make(map[string][]byte)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return store.Snapshot{}, s.wrap("read", path, err)
		}
		children[k] = []byte(v)
	}
	if err := rows.Err(); err != nil {
		return store.Snapshot{}, s.wrap("read", path, err)
	}

	data, err := store.Collect(children)
	if err != nil {
		return store.Snapshot{}, err
	}
	return store.NewSnapshot(collection, data), nil
}

// Set implements store.Store.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	collection, key, err := store.Split(path)
	if err != nil {
		return err
	}

	if key == "" {
		children, err := store.EncodeChildren(value)
		if err != nil {
			return err
		}
		return s.tx(ctx, path, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE collection = ?`, collection); err != nil {
				return err
			}
			for k, v := range children {
				if err := put(ctx, tx, collection, k, v); err != nil {
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
	return s.tx(ctx, path, func(tx *sql.Tx) error {
		if null {
			return del(ctx, tx, collection, key)
		}
		return put(ctx, tx, collection, key, data)
	})
}

// Update implements store.Store.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	collection, key, err := store.Split(path)
	if err != nil {
		return err
	}

	return s.tx(ctx, path, func(tx *sql.Tx) error {
		if key == "" {
			for child, value := range fields {
				data, null, err := store.Encode(value)
				if err != nil {
					return err
				}
				if null {
					err = del(ctx, tx, collection, child)
				} else {
					err = put(ctx, tx, collection, child, data)
				}
				if err != nil {
					return err
				}
			}
			return nil
		}

		var existing []byte
		var value string
		err := tx.QueryRowContext(ctx,
			`SELECT value FROM nodes WHERE collection = ? AND key = ?`, collection, key,
		).Scan(&value)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return err
		default:
			existing = []byte(value)
		}

		merged, err := store.Merge(existing, fields)
		if err != nil {
			return err
		}
		if merged == nil {
			return del(ctx, tx, collection, key)
		}
		return put(ctx, tx, collection, key, merged)
	})
}

// Remove implements store.Store.
func (s *Store) Remove(ctx context.Context, path string) error {
	collection, key, err := store.Split(path)
	if err != nil {
		return err
	}

	return s.tx(ctx, path, func(tx *sql.Tx) error {
		if key == "" {
			_, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE collection = ?`, collection)
			return err
		}
		return del(ctx, tx, collection, key)
	})
}

// Ping implements store.Pinger.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements store.Store.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) tx(ctx context.Context, path string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.wrap("begin", path, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		var verr *errors.ValidationError
		if errors.As(err, &verr) {
			return err
		}
		return s.wrap("write", path, err)
	}
	if err := tx.Commit(); err != nil {
		return s.wrap("commit", path, err)
	}
	return nil
}

func (s *Store) wrap(operation, path string, err error) error {
	if errors.Is(err, sql.ErrConnDone) || err.Error() == "sql: database is closed" {
		return store.ErrClosed
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.WrapIO(operation, path, err)
}

func put(ctx context.Context, tx *sql.Tx, collection, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO nodes (collection, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		collection, key, string(value), time.Now().UTC().Format(constants.TimeFormatISO8601))
	return err
}

func del(ctx context.Context, tx *sql.Tx, collection, key string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM nodes WHERE collection = ? AND key = ?`, collection, key)
	return err
}
