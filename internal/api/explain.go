package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

type ExplainHandler struct {
	suppliers *SuppliersHandler
	weights   *scoring.WeightStore
	logger    *slog.Logger
}

func NewExplainHandler(s store.Store, ws *scoring.WeightStore, logger *slog.Logger) *ExplainHandler {
	return &ExplainHandler{
		suppliers: &SuppliersHandler{store: s, weights: ws, logger: logger},
		weights:   ws,
		logger:    logger,
	}
}

// Explain returns the per-factor scoring breakdown for a supplier.
// GET /api/v1/scoring/explain/{id}
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	sp, ok := h.suppliers.load(w, r)
	if !ok {
		return
	}
	scorer, err := h.weights.Scorer(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	b, err := scorer.Explain(sp)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	scoresComputed.Inc()
	writeJSON(w, http.StatusOK, b)
}
