package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/pkg/store"
	"github.com/agentstation/retroshelf/pkg/store/memory"
	"github.com/agentstation/retroshelf/pkg/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s := memory.New()
		t.Cleanup(func() { _ = s.Close() })
		return s
	}, storetest.Options{})
}

func TestValuesAreCopied(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	raw := []byte(`{"titulo":"Pong"}`)
	require.NoError(t, s.Set(ctx, "items/a", raw))
	raw[2] = 'X'

	snap, err := s.Get(ctx, "items/a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"titulo":"Pong"}`, string(snap.Raw()))
	assert.Equal(t, 1, s.Len("items"))
	assert.Len(t, s.Dump("items"), 1)
}

func TestClosed(t *testing.T) {
	s := memory.New()
	require.NoError(t, s.Close())

	_, err := s.Get(context.Background(), "items")
	assert.ErrorIs(t, err, store.ErrClosed)
	assert.ErrorIs(t, s.Ping(context.Background()), store.ErrClosed)
}

func TestOpenByName(t *testing.T) {
	s, err := store.Open(context.Background(), store.Config{Backend: memory.Name})
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &memory.Store{}, s)
	assert.Contains(t, store.Backends(), memory.Name)
}
