// Package httpapi assembles the service's HTTP surface: shared middleware,
// operational endpoints, and the per-feature route registrations. Business
// logic stays in the feature packages; this layer only wires them together.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crisiswatch/internal/platform/metrics"
	"crisiswatch/internal/platform/middleware"
	"crisiswatch/pkg/platform/httputil"
)

// Registrar is implemented by feature handlers that mount routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker probes one dependency for the health endpoint.
type HealthChecker func(ctx context.Context) error

// RouterConfig carries the cross-cutting settings the router needs.
type RouterConfig struct {
	AllowedOrigins []string
	Health         map[string]HealthChecker
	Metrics        *metrics.HTTP
}

// NewRouter builds the full HTTP handler. Feature routes are registered in
// the order given; operational endpoints are always present.
func NewRouter(cfg RouterConfig, features ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}

	r.Get("/health", healthHandler(cfg.Health))
	r.Handle("/metrics", promhttp.Handler())

	for _, f := range features {
		f.Register(r)
	}
	return r
}

// healthHandler reports per-dependency status. A failing check degrades the
// overall status to 503 so load balancers stop routing here, but the body
// still names every component so operators see what broke.
func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "healthy"}

		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
				continue
			}
			body[name] = "ok"
		}

		httputil.WriteJSON(w, status, body)
	}
}
