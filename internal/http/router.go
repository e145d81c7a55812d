// Package httpapi assembles the public router. Handlers stay in their module
// packages; this file only mounts them and the operational endpoints.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ownershiphandler "github.com/M1rr0rb4all/pscback/internal/ownership/handler"
	"github.com/M1rr0rb4all/pscback/internal/platform/middleware"
	"github.com/M1rr0rb4all/pscback/pkg/platform/httputil"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger    *slog.Logger
	Ownership *ownershiphandler.Handler
	// APIKeyConfigured feeds the health endpoint so operators can spot a
	// missing registry credential before the first resolve fails.
	APIKeyConfigured bool
	ServiceName      string
}

// New wires all public endpoints. No global timeout middleware: deep
// ownership chains are allowed to run, bounded only by per-call registry
// timeouts.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{
			"message": deps.ServiceName,
			"status":  "running",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":             "healthy",
			"api_key_configured": deps.APIKeyConfigured,
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	deps.Ownership.Register(r)

	return r
}
