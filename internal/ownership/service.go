package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/M1rr0rb4all/pscback/internal/ownership/metrics"
	dErrors "github.com/M1rr0rb4all/pscback/pkg/domain-errors"
	audit "github.com/M1rr0rb4all/pscback/pkg/platform/audit"
	"github.com/M1rr0rb4all/pscback/pkg/platform/sentinel"
	"github.com/M1rr0rb4all/pscback/pkg/requestcontext"
)

// Auditor records resolution outcomes. Kept as a one-method interface so the
// service doesn't care whether events land in memory or a database.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates a resolution: name search, tree build, aggregation.
type Service struct {
	search  CompanySearcher
	builder *Builder
	auditor Auditor
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(search CompanySearcher, builder *Builder, auditor Auditor, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		search:  search,
		builder: builder,
		auditor: auditor,
		logger:  logger,
		metrics: m,
	}
}

// Resolve turns a company display name into its full ownership tree.
//
// Only two faults abort the request: no active company matching the name
// (not_found) and unusable registry credentials (configuration_error). All
// node-level failures during traversal surface as partial results plus the
// Errors list.
func (s *Service) Resolve(ctx context.Context, companyName string) (*Result, error) {
	start := time.Now()

	ctx, span := otel.Tracer("ownership").Start(ctx, "ownership.resolve")
	span.SetAttributes(attribute.String("company.name", companyName))
	defer span.End()

	match, err := s.resolveMatch(ctx, companyName)
	if err != nil {
		return nil, err
	}

	sink := NewErrorSink()
	root := s.builder.Build(ctx, match.CompanyNumber, match.Title, NewVisited(), sink, 0)
	total := CountNodes(root)
	elapsed := time.Since(start)

	s.metrics.IncrementResolution("resolved")
	s.metrics.ObserveResolveLatency(elapsed)
	s.metrics.ObserveTreeSize(total)

	messages := sink.Messages()
	s.emit(ctx, audit.Event{
		RequestID:  requestcontext.RequestID(ctx),
		Subject:    match.CompanyNumber,
		Action:     string(audit.EventOwnershipResolved),
		Decision:   "resolved",
		NodeCount:  total,
		ErrorCount: len(messages),
	})

	s.logger.InfoContext(ctx, "ownership resolved",
		"request_id", requestcontext.RequestID(ctx),
		"company_number", match.CompanyNumber,
		"total_nodes", total,
		"errors", len(messages),
		"duration_ms", elapsed.Milliseconds(),
	)

	return &Result{
		Root:           root,
		TotalNodes:     total,
		ProcessingTime: elapsed.Seconds(),
		Errors:         messages,
	}, nil
}

// resolveMatch applies the selection policy: first active result whose title
// contains the query (case-insensitive), else the first active result, else
// not found. Transport failures at this step count as "no results".
func (s *Service) resolveMatch(ctx context.Context, companyName string) (*CompanyMatch, error) {
	matches, err := s.search.Search(ctx, companyName)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotConfigured) {
			s.metrics.IncrementResolution("configuration_error")
			s.emit(ctx, audit.Event{
				RequestID: requestcontext.RequestID(ctx),
				Subject:   companyName,
				Action:    string(audit.EventResolutionFailed),
				Decision:  "configuration_error",
				Reason:    err.Error(),
			})
			return nil, dErrors.New(dErrors.CodeConfiguration, "registry API key not configured")
		}
		s.logger.WarnContext(ctx, "company search failed",
			"request_id", requestcontext.RequestID(ctx),
			"company_name", companyName,
			"error", err,
		)
		matches = nil
	}

	query := strings.ToLower(companyName)
	var firstActive *CompanyMatch
	for i := range matches {
		m := &matches[i]
		if m.Status != "active" {
			continue
		}
		if strings.Contains(strings.ToLower(m.Title), query) {
			return m, nil
		}
		if firstActive == nil {
			firstActive = m
		}
	}
	if firstActive != nil {
		return firstActive, nil
	}

	s.metrics.IncrementResolution("not_found")
	s.emit(ctx, audit.Event{
		RequestID: requestcontext.RequestID(ctx),
		Subject:   companyName,
		Action:    string(audit.EventResolutionFailed),
		Decision:  "not_found",
	})
	return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("company %q not found", companyName))
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}
