package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/store"
	"github.com/agentstation/retroshelf/pkg/store/bolt"
	"github.com/agentstation/retroshelf/pkg/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := bolt.Open(filepath.Join(t.TempDir(), "shelf.bolt"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}, storetest.Options{})
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shelf.bolt")
	ctx := context.Background()

	s, err := bolt.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "items/a", map[string]any{"titulo": "Pong"}))
	require.NoError(t, s.Close())

	s, err = bolt.Open(path)
	require.NoError(t, err)
	defer s.Close()

	snap, err := s.Get(ctx, "items/a")
	require.NoError(t, err)
	assert.True(t, snap.Exists())
	assert.Equal(t, path, s.Path())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := store.Open(context.Background(), store.Config{Backend: bolt.Name})
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
