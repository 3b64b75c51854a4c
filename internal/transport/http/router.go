// Package http assembles the chi router: middleware chain, feature handlers,
// health, and the metrics endpoint.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"userdir/internal/platform/metrics"
	"userdir/internal/platform/middleware"
	"userdir/pkg/platform/httputil"
)

// Registerer is a feature handler that mounts its routes on the router.
type Registerer interface {
	Register(r chi.Router)
}

// HealthCheck probes one dependency. It returns nil when the dependency
// answers.
type HealthCheck func(ctx context.Context) error

// Config carries what the router needs beyond the handlers themselves.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration

	// DatabaseCheck and CacheCheck are optional probes surfaced by /health.
	DatabaseCheck HealthCheck
	CacheCheck    HealthCheck
}

// New builds the router with the standard middleware chain and mounts every
// handler.
func New(cfg Config, handlers ...Registerer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Latency(cfg.Metrics))

	r.Get("/health", handleHealth(cfg))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}

type healthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Cache     string    `json:"cache,omitempty"`
}

// handleHealth always answers 200; degraded dependencies are reported in the
// body so load balancers keep routing while operators see the problem.
func handleHealth(cfg Config) http.HandlerFunc {
	probe := func(ctx context.Context, check HealthCheck) string {
		if check == nil {
			return "not_configured"
		}
		if err := check(ctx); err != nil {
			return "unreachable"
		}
		return "ok"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status:    "healthy",
			Message:   "service is running",
			Timestamp: time.Now().UTC(),
			Database:  probe(ctx, cfg.DatabaseCheck),
		}
		if cfg.CacheCheck != nil {
			resp.Cache = probe(ctx, cfg.CacheCheck)
		}
		if resp.Database == "unreachable" || resp.Cache == "unreachable" {
			resp.Status = "degraded"
			resp.Message = "one or more dependencies are unreachable"
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
	}
}
