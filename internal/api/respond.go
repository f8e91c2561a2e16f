package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeError maps engine errors onto HTTP statuses. Anything unrecognized is
// a 500.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		verr *scoring.ValidationError
		derr *scoring.DataError
		cerr *scoring.ConfigurationError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Fields})
	case errors.As(err, &derr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: derr.Error(), Fields: map[string]string{derr.Field: derr.Reason}})
	case errors.As(err, &cerr):
		logger.Error("scoring configuration unusable", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: cerr.Error()})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
