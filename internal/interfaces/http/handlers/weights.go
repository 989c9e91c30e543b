package handlers

import (
	"net/http"

	httpContracts "github.com/sawpanic/propscore/internal/http"
)

// Weights handles GET /weights endpoint
func (h *Handlers) Weights(w http.ResponseWriter, r *http.Request) {
	weights := h.scorer.Weights()
	h.writeJSON(w, http.StatusOK, httpContracts.WeightsResponse{
		Weights:   weights,
		ActiveSum: weights.Sum(),
	})
}
