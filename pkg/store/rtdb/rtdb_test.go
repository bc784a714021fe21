package rtdb_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/internal/transport"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/store"
	"github.com/agentstation/retroshelf/pkg/store/rtdb"
	"github.com/agentstation/retroshelf/pkg/store/storetest"
)

// fakeDB serves a JSON tree with the same REST semantics as the database.
type fakeDB struct {
	mu       sync.Mutex
	root     map[string]any
	secret   string
	requests []string
}

func newFakeDB(secret string) *fakeDB {
	return &fakeDB{root: make(map[string]any), secret: secret}
}

func (f *fakeDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	if f.secret != "" && r.URL.Query().Get("auth") != f.secret {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Permission denied"}`))
		return
	}
	if !strings.HasSuffix(r.URL.Path, ".json") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var segs []string
	for _, s := range strings.Split(strings.TrimSuffix(r.URL.Path, ".json"), "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}

	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(f.lookup(segs))
	case http.MethodPut:
		var v any
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.set(segs, v)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPatch:
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for k, v := range fields {
			f.set(append(append([]string{}, segs...), k), v)
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		f.set(segs, nil)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeDB) lookup(segs []string) any {
	var node any = f.root
	for _, s := range segs {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node, ok = m[s]
		if !ok {
			return nil
		}
	}
	if m, ok := node.(map[string]any); ok && len(m) == 0 {
		return nil
	}
	return node
}

func (f *fakeDB) set(segs []string, v any) {
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		v = nil
	}
	if len(segs) == 0 {
		m, _ := v.(map[string]any)
		if m == nil {
			m = make(map[string]any)
		}
		f.root = m
		return
	}
	setPath(f.root, segs, v)
}

func setPath(node map[string]any, segs []string, v any) {
	if len(segs) == 1 {
		if v == nil {
			delete(node, segs[0])
		} else {
			node[segs[0]] = v
		}
		return
	}
	child, ok := node[segs[0]].(map[string]any)
	if !ok {
		if v == nil {
			return
		}
		child = make(map[string]any)
		node[segs[0]] = child
	}
	setPath(child, segs[1:], v)
	if len(child) == 0 {
		delete(node, segs[0])
	}
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		srv := httptest.NewServer(newFakeDB("s3cret"))
		t.Cleanup(srv.Close)

		s, err := rtdb.New(srv.URL, rtdb.WithSecret("s3cret"))
		require.NoError(t, err)
		return s
	}, storetest.Options{DeepPaths: true})
}

func TestDeepPath(t *testing.T) {
	srv := httptest.NewServer(newFakeDB(""))
	defer srv.Close()

	s, err := rtdb.New(srv.URL + "/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "items/a", map[string]any{"titulo": "Pong", "ano": 1972}))
	require.NoError(t, s.Set(ctx, "items/a/titulo", "Pong 2"))

	snap, err := s.Get(ctx, "items/a/titulo")
	require.NoError(t, err)
	assert.Equal(t, "titulo", snap.Key())

	var title string
	require.NoError(t, snap.Decode(&title))
	assert.Equal(t, "Pong 2", title)
}

func TestDotSegmentsRejected(t *testing.T) {
	db := newFakeDB("")
	srv := httptest.NewServer(db)
	defer srv.Close()

	s, err := rtdb.New(srv.URL)
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, s.Remove(ctx, "items/../users"), store.ErrInvalidPath)
	assert.ErrorIs(t, s.Update(ctx, "items/../config", map[string]any{"x": 1}), store.ErrInvalidPath)
	assert.ErrorIs(t, s.Set(ctx, "items/.", map[string]any{"x": 1}), store.ErrInvalidPath)
	_, err = s.Get(ctx, "../items")
	assert.ErrorIs(t, err, store.ErrInvalidPath)

	assert.Empty(t, db.requests)
}

func TestPermissionDenied(t *testing.T) {
	srv := httptest.NewServer(newFakeDB("right"))
	defer srv.Close()

	s, err := rtdb.New(srv.URL, rtdb.WithSecret("wrong"))
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "items")
	require.Error(t, err)

	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Permission denied", apiErr.Message)
}

func TestBearerAuthenticator(t *testing.T) {
	var header string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	s, err := rtdb.New(srv.URL, rtdb.WithSecret("token"), rtdb.WithAuthenticator(&transport.BearerAuth{}))
	require.NoError(t, err)

	snap, err := s.Get(context.Background(), "items")
	require.NoError(t, err)
	assert.False(t, snap.Exists())
	assert.Equal(t, "Bearer token", header)
}

func TestPing(t *testing.T) {
	db := newFakeDB("")
	srv := httptest.NewServer(db)
	defer srv.Close()

	s, err := rtdb.New(srv.URL)
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, []string{"GET /.json"}, db.requests)
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s, err := rtdb.New(url)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "items")
	assert.True(t, errors.IsStoreUnavailable(err))
}

func TestNewValidatesURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a url", "/relative"} {
		_, err := rtdb.New(raw)
		var cfgErr *errors.ConfigError
		assert.True(t, errors.As(err, &cfgErr), raw)
	}
}
