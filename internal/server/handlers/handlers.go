// Package handlers provides HTTP request handlers for the catalog page and
// its JSON API.
package handlers

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/internal/server/cache"
	"github.com/agentstation/retroshelf/internal/server/sse"
	ws "github.com/agentstation/retroshelf/internal/server/websocket"
	"github.com/agentstation/retroshelf/internal/view"
	"github.com/agentstation/retroshelf/pkg/store"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	ctl            *controller.Controller
	renderer       *view.Renderer
	cache          *cache.Cache
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	pinger         store.Pinger
	prefix         string
}

// Option configures Handlers.
type Option func(*Handlers)

// WithPinger makes the readiness check ping the store.
func WithPinger(p store.Pinger) Option {
	return func(h *Handlers) {
		h.pinger = p
	}
}

// WithPrefix sets the API path prefix used to build live reload URLs.
func WithPrefix(prefix string) Option {
	return func(h *Handlers) {
		h.prefix = prefix
	}
}

// New creates a new Handlers instance.
func New(
	ctl *controller.Controller,
	renderer *view.Renderer,
	cache *cache.Cache,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
	opts ...Option,
) *Handlers {
	h := &Handlers{
		ctl:            ctl,
		renderer:       renderer,
		cache:          cache,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader:       upgrader,
		logger:         logger,
		prefix:         "/api/v1",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ensureLoaded loads the catalog once. Until a load succeeds every request
// tries again; afterwards the loaded state is served until a mutation or
// an explicit reload.
func (h *Handlers) ensureLoaded(ctx context.Context) controller.State {
	state := h.ctl.Snapshot()
	if state.Loaded() {
		return state
	}
	// The failure is recorded in the state.
	_ = h.ctl.Load(ctx)
	return h.ctl.Snapshot()
}
