// Package rtdb provides a store backend on the Firebase Realtime Database
// REST API. Every path maps to {url}/{path}.json and the database secret,
// when configured, is sent as the auth query parameter.
package rtdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/retroshelf/internal/transport"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/store"
)

// Name is the backend name used with store.Open.
const Name = "rtdb"

const service = "rtdb"

func init() {
	store.Register(Name, func(_ context.Context, cfg store.Config) (store.Store, error) {
		return New(cfg.URL, WithSecret(cfg.Secret))
	})
}

// Store talks to one database over REST.
type Store struct {
	base   *url.URL
	secret string
	auth   transport.Authenticator
	opts   []transport.Option
	client *transport.Client
}

// Option configures a Store.
type Option func(*Store)

// WithSecret sets the database secret or ID token.
func WithSecret(secret string) Option {
	return func(s *Store) {
		s.secret = secret
	}
}

// WithAuthenticator changes how the secret is attached to requests.
// The default sends it as the auth query parameter.
func WithAuthenticator(auth transport.Authenticator) Option {
	return func(s *Store) {
		s.auth = auth
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Store) {
		s.opts = append(s.opts, transport.WithHTTPClient(hc))
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.opts = append(s.opts, transport.WithTimeout(d))
	}
}

// New creates a store for the database at rawURL.
func New(rawURL string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errors.NewConfigError("store", "rtdb backend requires a database URL", nil)
	}
	base, err := url.Parse(strings.TrimRight(rawURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewConfigError("store", "invalid rtdb database URL "+rawURL, err)
	}

	s := &Store{
		base: base,
		auth: &transport.QueryAuth{Param: "auth"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = transport.New(s.auth, s.secret, append([]transport.Option{transport.WithService(service)}, s.opts...)...)
	return s, nil
}

// Get implements store.Store.
func (s *Store) Get(ctx context.Context, path string) (store.Snapshot, error) {
	endpoint, err := s.endpoint(path, false)
	if err != nil {
		return store.Snapshot{}, err
	}
	body, err := s.client.Send(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return store.Snapshot{}, err
	}
	return store.NewSnapshot(store.Base(path), body), nil
}

// Set implements store.Store.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	data, null, err := store.Encode(value)
	if err != nil {
		return err
	}
	if null {
		return s.Remove(ctx, path)
	}

	endpoint, err := s.endpoint(path, true)
	if err != nil {
		return err
	}
	_, err = s.client.Send(ctx, http.MethodPut, endpoint, json.RawMessage(data))
	return err
}

// Update implements store.Store. Nil field values are sent as JSON null,
// which the database treats as a delete.
func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	endpoint, err := s.endpoint(path, true)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	_, err = s.client.Send(ctx, http.MethodPatch, endpoint, fields)
	return err
}

// Remove implements store.Store.
func (s *Store) Remove(ctx context.Context, path string) error {
	endpoint, err := s.endpoint(path, true)
	if err != nil {
		return err
	}
	_, err = s.client.Send(ctx, http.MethodDelete, endpoint, nil)
	return err
}

// Ping implements store.Pinger with a shallow read of the root.
func (s *Store) Ping(ctx context.Context) error {
	u := s.base.JoinPath(".json")
	u.RawQuery = url.Values{"shallow": {"true"}}.Encode()
	_, err := s.client.Send(ctx, http.MethodGet, u.String(), nil)
	return err
}

// Close implements store.Store.
func (s *Store) Close() error {
	return nil
}

func (s *Store) endpoint(path string, silent bool) (string, error) {
	segments, err := store.Segments(path)
	if err != nil {
		return "", err
	}
	segments[len(segments)-1] += ".json"

	u := s.base.JoinPath(segments...)
	if silent {
		u.RawQuery = url.Values{"print": {"silent"}}.Encode()
	}
	return u.String(), nil
}
