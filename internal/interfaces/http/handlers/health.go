package handlers

import (
	"net/http"
	"time"

	httpContracts "github.com/sawpanic/propscore/internal/http"
)

// Health handles GET /health endpoint
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response := httpContracts.HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}
	if h.limiter != nil {
		response.RateLimit = httpContracts.RateLimit{
			RPS:     h.limiter.RPS(),
			Burst:   h.limiter.Burst(),
			Clients: h.limiter.Clients(),
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}
