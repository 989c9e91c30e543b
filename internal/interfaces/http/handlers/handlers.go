package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	httpContracts "github.com/sawpanic/propscore/internal/http"
	"github.com/sawpanic/propscore/internal/metrics"
	"github.com/sawpanic/propscore/internal/net/ratelimit"
	"github.com/sawpanic/propscore/internal/scoring"
)

type contextKey string

// RequestIDKey carries the request ID set by the server middleware.
const RequestIDKey contextKey = "request_id"

// WithRequestID returns ctx tagged with id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "unknown".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return id
	}
	return "unknown"
}

// Handlers manages all HTTP endpoint handlers
type Handlers struct {
	scorer  *scoring.Scorer
	metrics *metrics.Registry
	limiter *ratelimit.Limiter
	version string
	started time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(scorer *scoring.Scorer, reg *metrics.Registry, limiter *ratelimit.Limiter, version string) *Handlers {
	return &Handlers{
		scorer:  scorer,
		metrics: reg,
		limiter: limiter,
		version: version,
		started: time.Now(),
	}
}

// writeJSON writes JSON response with proper error handling
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"json_encoding_failed"}`, http.StatusInternalServerError)
	}
}

// writeError writes standardized error response
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	errorResp := httpContracts.ErrorResponse{
		Error:     http.StatusText(status),
		Message:   message,
		Code:      code,
		RequestID: RequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	}

	h.writeJSON(w, status, errorResp)
}

// NotFound handles 404 responses
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusNotFound, "endpoint_not_found",
		"The requested endpoint does not exist")
}

// MethodNotAllowed handles 405 responses
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed",
		"The endpoint does not support "+r.Method)
}

// TooManyRequests handles rate-limited requests
func (h *Handlers) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, http.StatusTooManyRequests, "rate_limited",
		"Too many requests, slow down")
}
