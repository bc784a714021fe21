// Package storetest runs the store contract against a backend.
package storetest

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/pkg/store"
)

// Factory returns a fresh, empty store for one subtest.
type Factory func(t *testing.T) store.Store

// Options tunes the contract for backends with a wider path model.
type Options struct {
	// DeepPaths is set for backends that accept paths deeper than
	// collection/key.
	DeepPaths bool
}

type doc struct {
	Title string `json:"titulo"`
	Year  int    `json:"ano,omitempty"`
	Genre string `json:"genero,omitempty"`
}

// Run exercises every store operation against the backend.
func Run(t *testing.T, newStore Factory, opts Options) {
	t.Helper()

	t.Run("GetMissingCollection", func(t *testing.T) {
		s := newStore(t)
		snap, err := s.Get(context.Background(), "items")
		require.NoError(t, err)
		assert.False(t, snap.Exists())

		children, err := snap.Children()
		require.NoError(t, err)
		assert.Empty(t, children)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", doc{Title: "Pong", Year: 1972}))

		snap, err := s.Get(ctx, "items/a")
		require.NoError(t, err)
		require.True(t, snap.Exists())
		assert.Equal(t, "a", snap.Key())

		var got doc
		require.NoError(t, snap.Decode(&got))
		assert.Equal(t, doc{Title: "Pong", Year: 1972}, got)
	})

	t.Run("SetReplaces", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", doc{Title: "Pong", Genre: "Esporte"}))
		require.NoError(t, s.Set(ctx, "items/a", doc{Title: "Pong 2"}))

		var got doc
		snap, err := s.Get(ctx, "items/a")
		require.NoError(t, err)
		require.NoError(t, snap.Decode(&got))
		assert.Equal(t, doc{Title: "Pong 2"}, got)
	})

	t.Run("SetNilRemoves", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", doc{Title: "Pong"}))
		require.NoError(t, s.Set(ctx, "items/a", nil))

		snap, err := s.Get(ctx, "items/a")
		require.NoError(t, err)
		assert.False(t, snap.Exists())
	})

	t.Run("CollectionChildren", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", doc{Title: "A"}))
		require.NoError(t, s.Set(ctx, "items/b", doc{Title: "B"}))
		require.NoError(t, s.Set(ctx, "other/c", doc{Title: "C"}))

		snap, err := s.Get(ctx, "items")
		require.NoError(t, err)
		require.True(t, snap.Exists())
		assert.Equal(t, "items", snap.Key())

		children, err := snap.Children()
		require.NoError(t, err)
		require.Len(t, children, 2)

		var b doc
		require.NoError(t, json.Unmarshal(children["b"], &b))
		assert.Equal(t, "B", b.Title)
	})

	t.Run("UpdateMerges", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", map[string]any{
			"titulo": "Pong",
			"ano":    1972,
			"nota":   9,
		}))
		require.NoError(t, s.Update(ctx, "items/a", map[string]any{
			"titulo": "Pong Deluxe",
			"genero": "Esporte",
		}))

		snap, err := s.Get(ctx, "items/a")
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, snap.Decode(&got))
		assert.Equal(t, "Pong Deluxe", got["titulo"])
		assert.Equal(t, "Esporte", got["genero"])
		assert.EqualValues(t, 1972, got["ano"])
		assert.EqualValues(t, 9, got["nota"])
	})

	t.Run("UpdateNilFieldDeletes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", map[string]any{"titulo": "Pong", "nota": 9}))
		require.NoError(t, s.Update(ctx, "items/a", map[string]any{"nota": nil}))

		var got map[string]any
		snap, err := s.Get(ctx, "items/a")
		require.NoError(t, err)
		require.NoError(t, snap.Decode(&got))
		assert.NotContains(t, got, "nota")
		assert.Equal(t, "Pong", got["titulo"])
	})

	t.Run("UpdateCreatesMissing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Update(ctx, "items/new", map[string]any{"titulo": "Fresh"}))

		var got doc
		snap, err := s.Get(ctx, "items/new")
		require.NoError(t, err)
		require.NoError(t, snap.Decode(&got))
		assert.Equal(t, "Fresh", got.Title)
	})

	t.Run("RemoveOnlyTarget", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", doc{Title: "A"}))
		require.NoError(t, s.Set(ctx, "items/b", doc{Title: "B"}))
		require.NoError(t, s.Remove(ctx, "items/a"))

		snap, err := s.Get(ctx, "items")
		require.NoError(t, err)
		children, err := snap.Children()
		require.NoError(t, err)
		assert.Len(t, children, 1)
		assert.Contains(t, children, "b")
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		assert.NoError(t, s.Remove(ctx, "items/ghost"))
		assert.NoError(t, s.Remove(ctx, "ghosts"))
	})

	t.Run("RemoveCollection", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/a", doc{Title: "A"}))
		require.NoError(t, s.Remove(ctx, "items"))

		snap, err := s.Get(ctx, "items")
		require.NoError(t, err)
		assert.False(t, snap.Exists())
	})

	t.Run("SetCollection", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, "items/old", doc{Title: "Old"}))
		require.NoError(t, s.Set(ctx, "items", map[string]doc{
			"x": {Title: "X"},
			"y": {Title: "Y"},
		}))

		snap, err := s.Get(ctx, "items")
		require.NoError(t, err)
		children, err := snap.Children()
		require.NoError(t, err)
		assert.Len(t, children, 2)
		assert.NotContains(t, children, "old")
	})

	t.Run("Push", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first := store.Push(s, "items")
		second := store.Push(s, "items")
		assert.NotEqual(t, first.Key(), second.Key())
		assert.True(t, strings.HasPrefix(first.Path(), "items/"))

		require.NoError(t, first.Set(ctx, doc{Title: "Pushed"}))

		snap, err := s.Get(ctx, first.Path())
		require.NoError(t, err)
		assert.True(t, snap.Exists())
		assert.Equal(t, first.Key(), snap.Key())
	})

	t.Run("InvalidPath", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.Get(ctx, "")
		assert.ErrorIs(t, err, store.ErrInvalidPath)
		assert.ErrorIs(t, s.Set(ctx, "items//a", doc{}), store.ErrInvalidPath)
	})

	if !opts.DeepPaths {
		t.Run("DeepPathUnsupported", func(t *testing.T) {
			s := newStore(t)
			err := s.Set(context.Background(), "items/a/titulo", "x")
			assert.ErrorIs(t, err, store.ErrUnsupportedPath)
		})
	}

	t.Run("CanceledContext", func(t *testing.T) {
		s := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Get(ctx, "items")
		assert.Error(t, err)
	})
}
