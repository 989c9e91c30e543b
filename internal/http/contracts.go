package http

import (
	"time"

	"github.com/sawpanic/propscore/internal/scoring"
)

// ScoreRequest is the POST /score body: listing attributes plus optional
// per-request weight overrides keyed by factor name.
type ScoreRequest struct {
	scoring.Params
	Weights map[string]float64 `json:"weights,omitempty"`
}

// ScoreResponse wraps a breakdown with request metadata.
type ScoreResponse struct {
	RequestID string             `json:"request_id"`
	Breakdown *scoring.Breakdown `json:"breakdown"`
	Scored    time.Time          `json:"scored"`
}

// WeightsResponse lists the server's weight table.
type WeightsResponse struct {
	Weights   scoring.Weights `json:"weights"`
	ActiveSum float64         `json:"active_sum"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	RateLimit RateLimit `json:"rate_limit"`
}

// RateLimit represents rate limiting settings
type RateLimit struct {
	RPS     float64 `json:"rps"`
	Burst   int     `json:"burst"`
	Clients int     `json:"clients"`
}

// ErrorResponse represents API error responses
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
