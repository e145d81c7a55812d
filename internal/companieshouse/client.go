// Package companieshouse implements the ownership ports against the Companies
// House public data API.
package companieshouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/M1rr0rb4all/pscback/internal/ownership"
	"github.com/M1rr0rb4all/pscback/pkg/platform/sentinel"
)

const (
	// DefaultBaseURL is the public Companies House data API.
	DefaultBaseURL = "https://api.company-information.service.gov.uk"

	// DefaultTimeout bounds every registry call. Timeouts are per call;
	// the traversal as a whole carries no deadline.
	DefaultTimeout = 30 * time.Second

	searchPageSize = 10
)

// Config carries the client settings, normally sourced from platform config.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the Companies House REST API. The API authenticates with
// HTTP basic auth: the key is the username and the password is empty.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Search implements ownership.CompanySearcher against /search/companies.
func (c *Client) Search(ctx context.Context, name string) ([]ownership.CompanyMatch, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("companies house api key: %w", sentinel.ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("q", name)
	q.Set("items_per_page", fmt.Sprint(searchPageSize))
	endpoint := fmt.Sprintf("%s/search/companies?%s", c.baseURL, q.Encode())

	var decoded searchResponse
	if err := c.get(ctx, endpoint, &decoded); err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}

	matches := make([]ownership.CompanyMatch, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		matches = append(matches, toCompanyMatch(item))
	}
	return matches, nil
}

// Parties implements ownership.PartiesFetcher against the PSC endpoint. The
// register answers 404 for companies with no PSC data; that is an empty
// result, not a failure.
func (c *Client) Parties(ctx context.Context, companyNumber string) ([]ownership.ControlRecord, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("companies house api key: %w", sentinel.ErrNotConfigured)
	}

	endpoint := fmt.Sprintf("%s/company/%s/persons-with-significant-control",
		c.baseURL, url.PathEscape(companyNumber))

	var decoded pscListResponse
	err := c.get(ctx, endpoint, &decoded)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			c.logger.DebugContext(ctx, "no PSC data", "company_number", companyNumber)
			return nil, nil
		}
		return nil, fmt.Errorf("fetch controlling parties for %s: %w", companyNumber, err)
	}

	records := make([]ownership.ControlRecord, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		records = append(records, toControlRecord(item))
	}
	return records, nil
}

// statusError reports a non-success registry status so callers can
// distinguish 404 from genuine failures.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("registry returned status %d: %v", e.status, sentinel.ErrUnavailable)
}

func (e *statusError) Unwrap() error { return sentinel.ErrUnavailable }

func isStatus(err error, status int) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == status
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%v: %w", err, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &statusError{status: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
