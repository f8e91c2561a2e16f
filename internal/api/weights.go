package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Verdant/internal/hermes"
	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
)

// WarningHeader carries the advisory weight-total warning on a successful save.
const WarningHeader = "X-Weights-Warning"

type WeightsHandler struct {
	weights *scoring.WeightStore
	hermes  hermes.Client
	logger  *slog.Logger
}

func NewWeightsHandler(ws *scoring.WeightStore, h hermes.Client, logger *slog.Logger) *WeightsHandler {
	return &WeightsHandler{weights: ws, hermes: h, logger: logger}
}

func (h *WeightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	weights, err := h.weights.Get(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, weights)
}

// Put replaces the weight configuration. All eight weights are required.
// PUT /api/v1/weights
func (h *WeightsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&raw); err != nil {
		weightSaves.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	weights, err := scoring.DecodeWeights(raw)
	if err != nil {
		weightSaves.WithLabelValues("invalid").Inc()
		writeError(w, h.logger, err)
		return
	}

	res, err := h.weights.Save(r.Context(), weights)
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			weightSaves.WithLabelValues("invalid").Inc()
		} else {
			weightSaves.WithLabelValues("error").Inc()
		}
		writeError(w, h.logger, err)
		return
	}

	if res.Warning != "" {
		weightSaves.WithLabelValues("warning").Inc()
		w.Header().Set(WarningHeader, res.Warning)
	} else {
		weightSaves.WithLabelValues("ok").Inc()
	}
	publishEvent(h.hermes, h.logger, hermes.SubjectWeightsUpdated, hermes.WeightsUpdatedEvent{
		Weights:   scoring.WeightMap(res.Weights),
		Total:     scoring.Sum(res.Weights),
		Warning:   res.Warning,
		Timestamp: time.Now().UTC(),
	})
	writeJSON(w, http.StatusOK, res.Weights)
}
