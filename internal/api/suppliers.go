package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Verdant/internal/hermes"
	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// MaxHistoricalCarbon is the number of monthly values a supplier may carry.
const MaxHistoricalCarbon = 12

const maxBodyBytes = 1 << 20

type SuppliersHandler struct {
	store   store.Store
	weights *scoring.WeightStore
	hermes  hermes.Client
	logger  *slog.Logger
}

func NewSuppliersHandler(s store.Store, ws *scoring.WeightStore, h hermes.Client, logger *slog.Logger) *SuppliersHandler {
	return &SuppliersHandler{store: s, weights: ws, hermes: h, logger: logger}
}

func (h *SuppliersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.SupplierFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	var err error
	if filter.Limit, err = intParam(q.Get("limit")); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		return
	}
	if filter.Offset, err = intParam(q.Get("offset")); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid offset"})
		return
	}

	var risk scoring.RiskLevel
	if v := q.Get("risk"); v != "" {
		var ok bool
		if risk, ok = scoring.ParseRiskLevel(v); !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "risk must be Low, Medium or High"})
			return
		}
	}

	scorer, err := h.weights.Scorer(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	suppliers, err := h.store.ListSuppliers(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	scored, err := scorer.ScoreAll(suppliers)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	scoresComputed.Add(float64(len(scored)))

	// Risk is derived, so it filters the scored page rather than the query.
	out := make([]*scoring.SupplierWithCalculated, 0, len(scored))
	for _, s := range scored {
		if risk == "" || s.RiskLevel == risk {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SuppliersHandler) Get(w http.ResponseWriter, r *http.Request) {
	sp, ok := h.load(w, r)
	if !ok {
		return
	}
	scored, err := h.score(r, sp)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scored)
}

func (h *SuppliersHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	verr := &scoring.ValidationError{}
	for _, field := range []string{"name", "carbonFootprint", "waterUsage"} {
		if v, ok := raw[field]; !ok || string(v) == "null" {
			verr.Add(field, "is required")
		}
	}
	if len(verr.Fields) > 0 {
		writeError(w, h.logger, verr)
		return
	}

	var sp store.Supplier
	if err := json.Unmarshal(body, &sp); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sp.ID = uuid.Nil
	if err := validateSupplier(&sp); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.store.CreateSupplier(r.Context(), &sp); err != nil {
		writeError(w, h.logger, err)
		return
	}
	scored, err := h.score(r, &sp)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish(hermes.SubjectSupplierCreated(sp.ID.String()), supplierEvent(scored))
	h.logger.Info("supplier created", "supplier_id", sp.ID, "name", sp.Name)
	writeJSON(w, http.StatusCreated, scored)
}

// Update applies a partial update: fields absent from the body keep their
// stored values.
func (h *SuppliersHandler) Update(w http.ResponseWriter, r *http.Request) {
	sp, ok := h.load(w, r)
	if !ok {
		return
	}
	id, createdAt := sp.ID, sp.CreatedAt

	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(sp); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sp.ID, sp.CreatedAt = id, createdAt
	if err := validateSupplier(sp); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.store.UpdateSupplier(r.Context(), sp); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "supplier not found"})
			return
		}
		writeError(w, h.logger, err)
		return
	}
	scored, err := h.score(r, sp)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.publish(hermes.SubjectSupplierUpdated(sp.ID.String()), supplierEvent(scored))
	writeJSON(w, http.StatusOK, scored)
}

func (h *SuppliersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid supplier id"})
		return
	}
	deleted, err := h.store.DeleteSupplier(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "supplier not found"})
		return
	}

	h.publish(hermes.SubjectSupplierDeleted(id.String()), hermes.SupplierEvent{
		SupplierID: id.String(),
		Timestamp:  time.Now().UTC(),
	})
	h.logger.Info("supplier deleted", "supplier_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Recommendations returns up to three improvement suggestions.
// GET /api/v1/suppliers/{id}/recommendations
func (h *SuppliersHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	sp, ok := h.load(w, r)
	if !ok {
		return
	}
	scored, err := h.score(r, sp)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scoring.Recommend(scored))
}

// load fetches the supplier named by the {id} URL parameter, writing a 400 or
// 404 when it cannot.
func (h *SuppliersHandler) load(w http.ResponseWriter, r *http.Request) (*store.Supplier, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid supplier id"})
		return nil, false
	}
	sp, err := h.store.GetSupplier(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return nil, false
	}
	if sp == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "supplier not found"})
		return nil, false
	}
	return sp, true
}

func (h *SuppliersHandler) score(r *http.Request, sp *store.Supplier) (*scoring.SupplierWithCalculated, error) {
	scorer, err := h.weights.Scorer(r.Context())
	if err != nil {
		return nil, err
	}
	scored, err := scorer.Score(sp)
	if err != nil {
		return nil, err
	}
	scoresComputed.Inc()
	return scored, nil
}

func (h *SuppliersHandler) publish(subject string, evt interface{}) {
	publishEvent(h.hermes, h.logger, subject, evt)
}

func publishEvent(c hermes.Client, logger *slog.Logger, subject string, evt interface{}) {
	if c == nil {
		return
	}
	if err := c.Publish(subject, evt); err != nil {
		logger.Warn("event publish failed", "subject", subject, "error", err)
	}
}

func supplierEvent(s *scoring.SupplierWithCalculated) hermes.SupplierEvent {
	return hermes.SupplierEvent{
		SupplierID:          s.ID.String(),
		Name:                s.Name,
		ProductCategory:     s.ProductCategory,
		SustainabilityScore: s.SustainabilityScore,
		RiskLevel:           string(s.RiskLevel),
		Timestamp:           time.Now().UTC(),
	}
}

// validateSupplier checks a supplier record before it is written. Every
// offending field is reported.
func validateSupplier(sp *store.Supplier) error {
	verr := &scoring.ValidationError{}

	if strings.TrimSpace(sp.Name) == "" {
		verr.Add("name", "is required")
	}
	nonNegative := map[string]float64{
		"carbonFootprint":      sp.CarbonFootprint,
		"waterUsage":           sp.WaterUsage,
		"wasteGeneration":      sp.WasteGeneration,
		"transportCostPerUnit": sp.TransportCostPerUnit,
		"employeeCount":        float64(sp.EmployeeCount),
		"regulatoryFlags":      float64(sp.RegulatoryFlags),
		"leadTimeDays":         float64(sp.LeadTimeDays),
	}
	for name, v := range nonNegative {
		if v < 0 {
			verr.Add(name, "must be non-negative")
		}
	}
	percents := map[string]float64{
		"wasteReduction":   sp.WasteReduction,
		"energyEfficiency": sp.EnergyEfficiency,
		"laborPractices":   sp.LaborPractices,
		"onTimeDelivery":   sp.OnTimeDelivery,
	}
	for name, v := range percents {
		if v < 0 || v > 100 {
			verr.Add(name, "must be between 0 and 100")
		}
	}
	if len(sp.HistoricalCarbon) > MaxHistoricalCarbon {
		verr.Add("historicalCarbon", "must have at most 12 monthly values")
	}
	for _, v := range sp.HistoricalCarbon {
		if v < 0 {
			verr.Add("historicalCarbon", "values must be non-negative")
			break
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
