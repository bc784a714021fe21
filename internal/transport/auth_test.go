package transport

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoAuth(t *testing.T) {
	auth := &NoAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "secret")

	assert.Empty(t, req.Header)
}

func TestBearerAuth(t *testing.T) {
	auth := &BearerAuth{}
	req := &http.Request{Header: make(http.Header)}

	auth.Apply(req, "token")

	assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
}

func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "auth"}
	u, _ := url.Parse("https://shelf.firebaseio.com/items.json?print=silent")
	req := &http.Request{URL: u, Header: make(http.Header)}

	auth.Apply(req, "secret")

	assert.Equal(t, "secret", req.URL.Query().Get("auth"))
	assert.Equal(t, "silent", req.URL.Query().Get("print"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestQueryAuthNilURL(t *testing.T) {
	auth := &QueryAuth{Param: "auth"}
	req := &http.Request{Header: make(http.Header)}

	assert.NotPanics(t, func() { auth.Apply(req, "secret") })
}
