// Package httptransport assembles the HTTP surface: middleware chain, domain
// routes, and operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "resourcehub/internal/auth/handler"
	cataloghandler "resourcehub/internal/catalog/handler"
	interactionhandler "resourcehub/internal/interaction/handler"
	"resourcehub/internal/platform/metrics"
	"resourcehub/internal/platform/middleware"
	synchandler "resourcehub/internal/sync"
	"resourcehub/pkg/platform/httputil"
)

// Deps are the wired handlers and cross-cutting pieces the router mounts.
type Deps struct {
	Auth        *authhandler.Handler
	Catalog     *cataloghandler.Handler
	Interaction *interactionhandler.Handler
	Sync        *synchandler.Handler

	// RequireSession guards authenticated routes and performs silent refresh.
	RequireSession func(http.Handler) http.Handler

	Metrics *metrics.Metrics
	Logger  *slog.Logger

	// Health reports backing store connectivity for /healthz.
	Health func(r *http.Request) error
}

// NewRouter builds the full route tree with the shared middleware chain.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Latency(d.Metrics))

	d.Auth.RegisterRoutes(r, d.RequireSession)
	d.Catalog.RegisterRoutes(r)
	d.Interaction.RegisterRoutes(r, d.RequireSession)
	d.Sync.RegisterRoutes(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if d.Health != nil {
			if err := d.Health(req); err != nil {
				d.Logger.ErrorContext(req.Context(), "health check failed", "error", err)
				httputil.WriteMessage(w, http.StatusServiceUnavailable, "unhealthy")
				return
			}
		}
		httputil.WriteMessage(w, http.StatusOK, "ok")
	})

	return r
}
