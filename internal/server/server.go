// Package server provides the HTTP server for the catalog page and API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/retroshelf/cmd/application"
	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/internal/server/cache"
	"github.com/agentstation/retroshelf/internal/server/events"
	"github.com/agentstation/retroshelf/internal/server/events/adapters"
	"github.com/agentstation/retroshelf/internal/server/middleware"
	"github.com/agentstation/retroshelf/internal/server/sse"
	ws "github.com/agentstation/retroshelf/internal/server/websocket"
	"github.com/agentstation/retroshelf/internal/view"
	"github.com/agentstation/retroshelf/pkg/constants"
	"github.com/agentstation/retroshelf/pkg/errors"
	"github.com/agentstation/retroshelf/pkg/store"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	ctl            *controller.Controller
	renderer       *view.Renderer
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	limiter        *middleware.RateLimiter
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	startTime      time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("server", err.Error(), err)
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = constants.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api/v1"
	}

	ctl, err := app.Controller()
	if err != nil {
		return nil, err
	}

	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(events.Filter(adapters.NewWebSocketSubscriber(wsHub), events.CatalogEvents()...))
	broker.Subscribe(events.Filter(adapters.NewSSESubscriber(sseBroadcaster), events.CatalogEvents()...))
	logger.Debug().Msg("Realtime transports subscribed to event broker")

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		app:            app,
		ctl:            ctl,
		renderer:       renderer,
		cache:          cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true // Allow all origins for WebSocket
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	ctl.SetNotifier(controller.NotifierFunc(s.onChange))
	logger.Debug().Msg("Controller changes connected to event broker")

	return s, nil
}

// onChange drops cached responses and publishes the change.
func (s *Server) onChange(_ context.Context, change controller.Change) {
	s.cache.Clear()

	var (
		eventType events.EventType
		data      any
	)
	switch change.Kind {
	case controller.ChangeCreated:
		eventType = events.ItemCreated
		data = events.ItemPayload{ID: change.ID, Item: &change.Item}
	case controller.ChangeUpdated:
		eventType = events.ItemUpdated
		data = events.ItemPayload{ID: change.ID, Item: &change.Item}
	case controller.ChangeDeleted:
		eventType = events.ItemDeleted
		data = events.ItemPayload{ID: change.ID}
	case controller.ChangeReloaded:
		eventType = events.CatalogReloaded
		data = events.ReloadPayload{Count: change.Count}
	default:
		return
	}

	s.broker.Publish(eventType, data)
	s.logger.Debug().
		Str("event_type", string(eventType)).
		Str("item_id", change.ID).
		Msg("Catalog event published")
}

// Start starts background services (broker, WebSocket hub, SSE
// broadcaster) and loads the catalog in the background.
func (s *Server) Start() {
	go s.broker.Run(s.ctx)
	go s.wsHub.Run(s.ctx)
	go s.sseBroadcaster.Run(s.ctx)

	go func() {
		if err := s.ctl.Load(s.ctx); err != nil {
			s.logger.Warn().Err(err).Msg("Initial catalog load failed")
		}
	}()

	s.logger.Debug().Msg("All background services started")
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server bound to the configured address and
// timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops background services. Open WebSocket and SSE streams are
// closed by their transports.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")

	s.cancel()
	if s.limiter != nil {
		s.limiter.Stop()
	}

	select {
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		s.logger.Info().Msg("Background services shut down successfully")
	}
	return nil
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// pinger returns the store's health check when it has one.
func (s *Server) pinger() store.Pinger {
	st, err := s.app.Store()
	if err != nil {
		return nil
	}
	p, _ := st.(store.Pinger)
	return p
}
