package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

const dashboardPageSize = 500

type DashboardHandler struct {
	store   store.Store
	weights *scoring.WeightStore
	logger  *slog.Logger
}

func NewDashboardHandler(s store.Store, ws *scoring.WeightStore, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{store: s, weights: ws, logger: logger}
}

// GET /api/v1/dashboard/metrics
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	scored, err := h.portfolio(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scoring.Summarize(scored))
}

// GET /api/v1/dashboard/regions
func (h *DashboardHandler) Regions(w http.ResponseWriter, r *http.Request) {
	scored, err := h.portfolio(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scoring.SummarizeRegions(scored))
}

// Frontier lists the suppliers no other supplier beats on score, carbon and
// transport cost at once.
// GET /api/v1/dashboard/frontier
func (h *DashboardHandler) Frontier(w http.ResponseWriter, r *http.Request) {
	scored, err := h.portfolio(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scoring.Frontier(scored))
}

// portfolio scores every stored supplier against one weights snapshot.
func (h *DashboardHandler) portfolio(ctx context.Context) ([]*scoring.SupplierWithCalculated, error) {
	scorer, err := h.weights.Scorer(ctx)
	if err != nil {
		return nil, err
	}

	var all []*store.Supplier
	for offset := 0; ; offset += dashboardPageSize {
		page, err := h.store.ListSuppliers(ctx, store.SupplierFilter{Limit: dashboardPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < dashboardPageSize {
			break
		}
	}

	scored, err := scorer.ScoreAll(all)
	if err != nil {
		return nil, err
	}
	scoresComputed.Add(float64(len(scored)))
	return scored, nil
}
