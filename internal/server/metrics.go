package server

import (
	"fmt"
	"net/http"
	"time"
)

// handleMetrics writes a small Prometheus text exposition.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	state := s.ctl.Snapshot()
	stats := s.cache.GetStats()

	loaded := 0
	if state.Loaded() {
		loaded = 1
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# TYPE retroshelf_items gauge\n")
	_, _ = fmt.Fprintf(w, "retroshelf_items %d\n", len(state.Items))
	_, _ = fmt.Fprintf(w, "# TYPE retroshelf_catalog_loaded gauge\n")
	_, _ = fmt.Fprintf(w, "retroshelf_catalog_loaded %d\n", loaded)
	_, _ = fmt.Fprintf(w, "# TYPE retroshelf_catalog_generation counter\n")
	_, _ = fmt.Fprintf(w, "retroshelf_catalog_generation %d\n", s.ctl.Generation())
	_, _ = fmt.Fprintf(w, "# TYPE retroshelf_cache_hits_total counter\n")
	_, _ = fmt.Fprintf(w, "retroshelf_cache_hits_total %d\n", stats.Hits)
	_, _ = fmt.Fprintf(w, "# TYPE retroshelf_cache_misses_total counter\n")
	_, _ = fmt.Fprintf(w, "retroshelf_cache_misses_total %d\n", stats.Misses)
	_, _ = fmt.Fprintf(w, "# TYPE retroshelf_realtime_clients gauge\n")
	_, _ = fmt.Fprintf(w, "retroshelf_realtime_clients{transport=\"websocket\"} %d\n", s.wsHub.ClientCount())
	_, _ = fmt.Fprintf(w, "retroshelf_realtime_clients{transport=\"sse\"} %d\n", s.sseBroadcaster.ClientCount())
	_, _ = fmt.Fprintf(w, "# TYPE retroshelf_uptime_seconds gauge\n")
	_, _ = fmt.Fprintf(w, "retroshelf_uptime_seconds %d\n", int64(time.Since(s.startTime).Seconds()))
}
