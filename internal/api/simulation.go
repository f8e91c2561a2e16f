package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
	"github.com/MikeSquared-Agency/Verdant/internal/simulation"
	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

type SimulationHandler struct {
	store   store.Store
	weights *scoring.WeightStore
	logger  *slog.Logger
}

func NewSimulationHandler(s store.Store, ws *scoring.WeightStore, logger *slog.Logger) *SimulationHandler {
	return &SimulationHandler{store: s, weights: ws, logger: logger}
}

type SimulationRequest struct {
	CurrentSupplierID     string `json:"currentSupplierId"`
	ProspectiveSupplierID string `json:"prospectiveSupplierId"`
	Quantity              int    `json:"quantity"`
	Years                 int    `json:"years"`
	RiskTolerance         string `json:"riskTolerance"`
}

// Simulate projects a supplier switch. Unknown suppliers yield a 200 with a
// null body; malformed parameters and projections too large to represent are
// a 400.
// POST /api/v1/simulations
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		simulations.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	curID, err := uuid.Parse(req.CurrentSupplierID)
	if err != nil {
		simulations.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid currentSupplierId"})
		return
	}
	proID, err := uuid.Parse(req.ProspectiveSupplierID)
	if err != nil {
		simulations.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prospectiveSupplierId"})
		return
	}
	tol, ok := simulation.ParseRiskTolerance(req.RiskTolerance)
	if !ok {
		simulations.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "riskTolerance must be low, medium or high"})
		return
	}
	params := simulation.Params{Quantity: req.Quantity, Years: req.Years, RiskTolerance: tol}
	if err := params.Validate(); err != nil {
		simulations.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	scorer, err := h.weights.Scorer(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	current, err := h.scored(r, scorer, curID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	prospective, err := h.scored(r, scorer, proID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	res := simulation.Simulate(current, prospective, params)
	if res == nil && current != nil && prospective != nil {
		simulations.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "projection out of range"})
		return
	}
	if res == nil {
		simulations.WithLabelValues("not_computable").Inc()
		h.logger.Debug("simulation not computable", "current", curID, "prospective", proID)
	} else {
		simulations.WithLabelValues("ok").Inc()
	}
	writeJSON(w, http.StatusOK, res)
}

// scored returns nil without error when the supplier does not exist.
func (h *SimulationHandler) scored(r *http.Request, scorer *scoring.Scorer, id uuid.UUID) (*scoring.SupplierWithCalculated, error) {
	sp, err := h.store.GetSupplier(r.Context(), id)
	if err != nil || sp == nil {
		return nil, err
	}
	scored, err := scorer.Score(sp)
	if err != nil {
		return nil, err
	}
	scoresComputed.Inc()
	return scored, nil
}
