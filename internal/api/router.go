package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Verdant/internal/hermes"
	"github.com/MikeSquared-Agency/Verdant/internal/scoring"
	"github.com/MikeSquared-Agency/Verdant/internal/store"
)

// NewRouter builds the public API. h may be nil when events are disabled.
// trustProxy lets forwarding headers set the client address used for rate
// limiting and logs.
func NewRouter(s store.Store, h hermes.Client, ws *scoring.WeightStore, adminToken string, requestsPerMinute int, trustProxy bool, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	if trustProxy {
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(requestsPerMinute))

	suppliers := NewSuppliersHandler(s, ws, h, logger)
	weights := NewWeightsHandler(ws, h, logger)
	explain := NewExplainHandler(s, ws, logger)
	sims := NewSimulationHandler(s, ws, logger)
	dashboard := NewDashboardHandler(s, ws, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/suppliers", suppliers.List)
		r.Post("/suppliers", suppliers.Create)
		r.Get("/suppliers/{id}", suppliers.Get)
		r.Patch("/suppliers/{id}", suppliers.Update)
		r.Get("/suppliers/{id}/recommendations", suppliers.Recommendations)

		r.Get("/scoring/explain/{id}", explain.Explain)

		r.Get("/weights", weights.Get)
		r.Post("/simulations", sims.Simulate)

		r.Get("/dashboard/metrics", dashboard.Metrics)
		r.Get("/dashboard/regions", dashboard.Regions)
		r.Get("/dashboard/frontier", dashboard.Frontier)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Delete("/suppliers/{id}", suppliers.Delete)
			r.Put("/weights", weights.Put)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
