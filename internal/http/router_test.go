package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ownershiphandler "github.com/M1rr0rb4all/pscback/internal/ownership/handler"
)

func newTestRouter(apiKeyConfigured bool) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(Deps{
		Logger:           log,
		Ownership:        ownershiphandler.New(nil, log),
		APIKeyConfigured: apiKeyConfigured,
		ServiceName:      "psc-gateway",
	})
}

func TestRootBanner(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "psc-gateway", resp["message"])
	assert.Equal(t, "running", resp["status"])
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
	}{
		{"api key configured", true},
		{"api key missing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestRouter(tt.configured).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "healthy", resp["status"])
			assert.Equal(t, tt.configured, resp["api_key_configured"])
		})
	}
}

func TestMetricsExposed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	t.Run("generated when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("inbound id echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()
		newTestRouter(true).ServeHTTP(rec, req)
		assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	})
}

func TestContentTypeEnforced(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/ownership-structure", strings.NewReader(`plain text`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	newTestRouter(true).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "expected application/json", resp["error_description"])
}
