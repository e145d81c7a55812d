package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M1rr0rb4all/pscback/internal/ownership"
	dErrors "github.com/M1rr0rb4all/pscback/pkg/domain-errors"
)

type fakeService struct {
	result *ownership.Result
	err    error
	names  []string
}

func (f *fakeService) Resolve(_ context.Context, companyName string) (*ownership.Result, error) {
	f.names = append(f.names, companyName)
	return f.result, f.err
}

func newTestRouter(service Service) http.Handler {
	h := New(service, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func postResolve(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/ownership-structure", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleResolve_Success(t *testing.T) {
	service := &fakeService{
		result: &ownership.Result{
			Root: &ownership.Node{
				ID:            "001",
				Name:          "ACME LTD",
				Type:          ownership.EntityUKCompany,
				CompanyNumber: "001",
				IsActive:      true,
				Children: []*ownership.Node{
					{
						ID:              "/company/001/psc/1",
						Name:            "Jane Doe",
						Type:            ownership.EntityIndividual,
						NatureOfControl: []string{"ownership-of-shares-25-to-50-percent"},
						IsActive:        true,
					},
				},
			},
			TotalNodes:     2,
			ProcessingTime: 0.42,
			Errors:         []string{},
		},
	}
	router := newTestRouter(service)

	rec := postResolve(t, router, `{"company_name": "Acme Ltd"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"Acme Ltd"}, service.names)

	var resp OwnershipResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ACME LTD", resp.RootCompany.Name)
	assert.Equal(t, "uk_company", resp.RootCompany.Type)
	assert.Equal(t, 2, resp.TotalNodes)
	assert.Equal(t, 0.42, resp.ProcessingTime)
	require.Len(t, resp.RootCompany.Children, 1)
	assert.Equal(t, "Jane Doe", resp.RootCompany.Children[0].Name)

	// Empty collections serialize as arrays, never null.
	assert.Contains(t, rec.Body.String(), `"errors":[]`)
	assert.Contains(t, rec.Body.String(), `"children":[]`)
}

func TestHandleResolve_InvalidBody(t *testing.T) {
	router := newTestRouter(&fakeService{})

	rec := postResolve(t, router, `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bad_request", resp["error"])
	assert.Equal(t, "invalid request body", resp["error_description"])
}

func TestHandleResolve_MissingCompanyName(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"absent field", `{}`},
		{"empty string", `{"company_name": ""}`},
		{"whitespace only", `{"company_name": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{}
			rec := postResolve(t, newTestRouter(service), tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "company_name is required", resp["error_description"])
			assert.Empty(t, service.names)
		})
	}
}

func TestHandleResolve_NotFound(t *testing.T) {
	service := &fakeService{err: dErrors.New(dErrors.CodeNotFound, `company "ghost" not found`)}

	rec := postResolve(t, newTestRouter(service), `{"company_name": "ghost"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp["error"])
}

func TestHandleResolve_ConfigurationError(t *testing.T) {
	service := &fakeService{err: dErrors.New(dErrors.CodeConfiguration, "registry API key not configured")}

	rec := postResolve(t, newTestRouter(service), `{"company_name": "acme"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "configuration_error", resp["error"])
	assert.Equal(t, "registry API key not configured", resp["error_description"])
}

func TestHandleResolve_UnexpectedErrorHidesDetail(t *testing.T) {
	service := &fakeService{err: dErrors.New(dErrors.CodeInternal, "connection string with credentials")}

	rec := postResolve(t, newTestRouter(service), `{"company_name": "acme"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal_error", resp["error"])
	assert.Empty(t, resp["error_description"])
}
