package handlers

import (
	"net/http"

	"github.com/agentstation/retroshelf/internal/controller"
	"github.com/agentstation/retroshelf/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "retroshelf",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready once the
// catalog has loaded and the store answers a ping.
func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Store ping failed")
			response.ServiceUnavailable(w, "Store not reachable")
			return
		}
	}

	state := h.ctl.Snapshot()
	if !state.Loaded() || state.Status == controller.StatusLoadError {
		response.ServiceUnavailable(w, "Catalog not loaded")
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"catalog": map[string]any{
			"items":     len(state.Items),
			"loaded_at": state.LoadedAt,
		},
		"cache":             h.cache.GetStats(),
		"websocket_clients": h.wsHub.ClientCount(),
		"sse_clients":       h.sseBroadcaster.ClientCount(),
	})
}
