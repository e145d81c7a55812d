package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/M1rr0rb4all/pscback/internal/ownership"
	"github.com/M1rr0rb4all/pscback/internal/platform/middleware"
	dErrors "github.com/M1rr0rb4all/pscback/pkg/domain-errors"
	"github.com/M1rr0rb4all/pscback/pkg/platform/httputil"
)

// Service defines the interface for ownership operations.
type Service interface {
	Resolve(ctx context.Context, companyName string) (*ownership.Result, error)
}

// Handler wires ownership endpoints to the ownership service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an ownership handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts ownership endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/ownership-structure", h.HandleResolve)
}

// HandleResolve handles POST /ownership-structure requests.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	var req CompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid resolve request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Resolve(ctx, req.CompanyName)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "ownership resolution failed",
				"request_id", requestID,
				"company_name", req.CompanyName,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "ownership structure returned",
		"request_id", requestID,
		"company_name", req.CompanyName,
		"total_nodes", result.TotalNodes,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
