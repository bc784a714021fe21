package server

import (
	"net/http"

	"github.com/agentstation/retroshelf/internal/server/handlers"
	"github.com/agentstation/retroshelf/internal/server/middleware"
	"github.com/agentstation/retroshelf/internal/view"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	opts := []handlers.Option{handlers.WithPrefix(s.config.PathPrefix)}
	if p := s.pinger(); p != nil {
		opts = append(opts, handlers.WithPinger(p))
	}

	h := handlers.New(
		s.ctl,
		s.renderer,
		s.cache,
		s.wsHub,
		s.sseBroadcaster,
		s.upgrader,
		s.logger,
		opts...,
	)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Page
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("POST /items", h.HandleSubmit)
	mux.HandleFunc("POST /items/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		h.HandleDelete(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST /reload", h.HandleReload)
	mux.HandleFunc("GET /clear", h.HandleClear)
	mux.HandleFunc("GET /fragments/grid", h.HandleGridFragment)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	// Health endpoints
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Items endpoints
	mux.HandleFunc("GET "+prefix+"/items", h.HandleListItems)
	mux.HandleFunc("POST "+prefix+"/items", h.HandleCreateItem)
	mux.HandleFunc("GET "+prefix+"/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleGetItem(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("PUT "+prefix+"/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleUpdateItem(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("DELETE "+prefix+"/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleDeleteItem(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("GET "+prefix+"/facets", h.HandleFacets)
	mux.HandleFunc("POST "+prefix+"/reload", h.HandleReloadAPI)

	// Real-time endpoints
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)

	// Metrics endpoint (optional)
	if s.config.MetricsEnabled {
		mux.HandleFunc("GET /metrics", s.handleMetrics)
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	if s.limiter != nil {
		handler = middleware.RateLimit(s.limiter)(handler)
	}

	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Logging and recovery (always enabled)
	handler = middleware.Logger(s.logger)(handler)
	handler = middleware.Recovery(s.logger)(handler)

	return handler
}
