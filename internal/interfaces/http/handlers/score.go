package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	httpContracts "github.com/sawpanic/propscore/internal/http"
	"github.com/sawpanic/propscore/internal/scoring"
)

const maxBodyBytes = 64 << 10

// Score handles POST /score endpoint
func (h *Handlers) Score(w http.ResponseWriter, r *http.Request) {
	requestID := RequestID(r.Context())

	var req httpContracts.ScoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "malformed_request", err.Error())
		return
	}

	scorer, err := h.scorerFor(req.Weights)
	if err != nil {
		h.rejected(w, r, err)
		return
	}

	listing, err := scoring.NewListing(req.Params)
	if err != nil {
		h.rejected(w, r, err)
		return
	}

	breakdown, err := scorer.Score(listing)
	if err != nil {
		h.rejected(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordBreakdown(breakdown)
	}

	log.Debug().
		Str("request_id", requestID).
		Float64("total", breakdown.Total).
		Msg("listing scored")

	h.writeJSON(w, http.StatusOK, httpContracts.ScoreResponse{
		RequestID: requestID,
		Breakdown: breakdown,
		Scored:    time.Now().UTC(),
	})
}

// scorerFor returns the server scorer, or a per-request one when the body
// overrides weights.
func (h *Handlers) scorerFor(overrides map[string]float64) (*scoring.Scorer, error) {
	if len(overrides) == 0 {
		return h.scorer, nil
	}

	parsed := make(map[scoring.Factor]float64, len(overrides))
	for name, v := range overrides {
		f, err := scoring.ParseFactor(name)
		if err != nil {
			return nil, err
		}
		parsed[f] = v
	}
	return scoring.NewScorer(h.scorer.Weights().With(parsed))
}

func (h *Handlers) rejected(w http.ResponseWriter, r *http.Request, err error) {
	if h.metrics != nil {
		h.metrics.RecordError(err)
	}

	code := "invalid_listing"
	switch {
	case errors.Is(err, scoring.ErrInvalidInput):
		code = "invalid_input"
	case errors.Is(err, scoring.ErrInvalidWeights):
		code = "invalid_weights"
	case !errors.Is(err, scoring.ErrInvalidListing):
		log.Error().Err(err).Str("request_id", RequestID(r.Context())).Msg("scoring failed")
		h.writeError(w, r, http.StatusInternalServerError, "internal_error", "scoring failed")
		return
	}

	h.writeError(w, r, http.StatusUnprocessableEntity, code, err.Error())
}
