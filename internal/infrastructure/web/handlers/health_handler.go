package handlers

import (
	"aetherium-service/internal/application/dto"
	"aetherium-service/internal/domain/interfaces"
	"context"
	"net/http"
	"time"
)

const readyCheckTimeout = 2 * time.Second

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	cache    interfaces.HealthChecker
	resolver interfaces.SymbolResolver
	now      func() time.Time
}

// NewHealthHandler crea el handler; cache puede ser nil si no hay backend que comprobar
func NewHealthHandler(cache interfaces.HealthChecker, resolver interfaces.SymbolResolver) *HealthHandler {
	return &HealthHandler{
		cache:    cache,
		resolver: resolver,
		now:      time.Now,
	}
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Does not check dependencies.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewHealthResponse("healthy", map[string]string{
		"service": "running",
	}))
}

// Ready godoc
// @Summary Readiness check
// @Description Pings the cache backend and reports the coin list snapshot state. An unloaded or stale snapshot degrades but does not fail readiness, since it is refreshed on demand.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
	defer cancel()

	services := map[string]string{"service": "ready"}
	status := "ready"

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			services["cache"] = "error: " + err.Error()
			writeJSON(w, http.StatusServiceUnavailable, dto.NewHealthResponse("unhealthy", services))
			return
		}
		services["cache"] = "ready"
	}

	snapshot, err := h.resolver.Snapshot(ctx)
	switch {
	case err != nil:
		services["symbols"] = "error: " + err.Error()
		status = "degraded"
	case snapshot == nil:
		services["symbols"] = "not_loaded"
	case snapshot.IsStale(h.now(), h.resolver.Window()):
		services["symbols"] = "stale"
		status = "degraded"
	default:
		services["symbols"] = "ready"
	}

	writeJSON(w, http.StatusOK, dto.NewHealthResponse(status, services))
}
