package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/retroshelf/pkg/errors"
)

func TestSend(t *testing.T) {
	var gotMethod, gotAuth, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.URL.Query().Get("auth")
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(&QueryAuth{Param: "auth"}, "s3cret", WithService("rtdb"))
	body, err := c.Send(context.Background(), http.MethodPatch, srv.URL+"/items/a.json", map[string]string{"titulo": "Pong"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "s3cret", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"titulo":"Pong"}`, gotBody)
}

func TestSendStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"not found", http.StatusNotFound, `{"error":"missing"}`, errors.ErrNotFound, "missing"},
		{"unavailable", http.StatusServiceUnavailable, "down", errors.ErrStoreUnavailable, "down"},
		{"rate limited", http.StatusTooManyRequests, "", errors.ErrRateLimited, "429 Too Many Requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(nil, "").Send(context.Background(), http.MethodGet, srv.URL+"/items.json", nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var apiErr *errors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, "/items.json", apiErr.Endpoint)
		})
	}
}

func TestSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(nil, "").Send(context.Background(), http.MethodGet, url+"/items.json", nil)
	require.Error(t, err)
	assert.True(t, errors.IsStoreUnavailable(err))
}
