package scoring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// WeightStore serves the single active weight configuration.
//
// Saves replace the previous configuration in place. There is no history, so
// an overwritten configuration cannot be recovered.
type WeightStore struct {
	store     store.Store
	tolerance float64
	logger    *slog.Logger
}

func NewWeightStore(s store.Store, tolerance float64, logger *slog.Logger) *WeightStore {
	if tolerance <= 0 {
		tolerance = DefaultSumTolerance
	}
	return &WeightStore{store: s, tolerance: tolerance, logger: logger}
}

// SaveResult is the persisted configuration plus any advisory warning.
type SaveResult struct {
	Weights store.Weights `json:"weights"`
	Warning string        `json:"warning,omitempty"`
}

// Get returns the saved configuration, or DefaultWeights when none exists.
func (ws *WeightStore) Get(ctx context.Context) (store.Weights, error) {
	w, err := ws.store.GetWeights(ctx)
	if err != nil {
		return store.Weights{}, fmt.Errorf("load weights: %w", err)
	}
	if w == nil {
		return DefaultWeights(), nil
	}
	return *w, nil
}

// Save validates and persists w by full replacement. A total far from 100
// yields a warning but is still saved.
func (ws *WeightStore) Save(ctx context.Context, w store.Weights) (*SaveResult, error) {
	if err := Validate(w); err != nil {
		return nil, err
	}
	saved, err := ws.store.SaveWeights(ctx, w)
	if err != nil {
		return nil, err
	}

	res := &SaveResult{Weights: *saved, Warning: SumWarning(*saved, ws.tolerance)}
	if res.Warning != "" {
		ws.logger.Warn("weights saved with unusual total", "total", Sum(*saved), "tolerance", ws.tolerance)
	} else {
		ws.logger.Info("weights saved", "total", Sum(*saved))
	}
	return res, nil
}

// Scorer fetches the current configuration once and binds it to a Scorer,
// so a whole request scores against one snapshot.
func (ws *WeightStore) Scorer(ctx context.Context) (*Scorer, error) {
	w, err := ws.Get(ctx)
	if err != nil {
		return nil, err
	}
	return NewScorer(w, ws.logger)
}
