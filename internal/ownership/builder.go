package ownership

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/M1rr0rb4all/pscback/internal/ownership/metrics"
)

// Builder expands a company into its ownership tree by fetching controlling
// parties and recursing into UK-company children. Depth is unbounded;
// termination relies on per-branch cycle detection and the register
// eventually running out of expandable parties.
type Builder struct {
	parties PartiesFetcher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewBuilder(parties PartiesFetcher, logger *slog.Logger, m *metrics.Metrics) *Builder {
	return &Builder{parties: parties, logger: logger, metrics: m}
}

// Build returns the ownership tree rooted at companyNumber. It never returns
// an error: fetch failures and cycles are node-local facts recorded on the
// tree and in the sink, not faults of the traversal.
//
// visited must be owned by this branch alone; Build clones it before every
// recursive call so sibling subtrees expand with independent cycle state. A
// company may therefore appear once per branch without tripping detection in
// another branch.
func (b *Builder) Build(ctx context.Context, companyNumber, companyName string, visited Visited, sink *ErrorSink, depth int) *Node {
	if visited.Has(companyNumber) {
		b.metrics.IncrementCycles()
		return &Node{
			ID:            companyNumber,
			Name:          companyName + " (circular reference)",
			Type:          EntityUKCompany,
			CompanyNumber: companyNumber,
			IsActive:      true,
			Err:           "Circular reference detected",
		}
	}
	visited.Add(companyNumber)

	ctx, span := otel.Tracer("ownership").Start(ctx, "ownership.build")
	span.SetAttributes(
		attribute.String("company.number", companyNumber),
		attribute.Int("depth", depth),
	)
	defer span.End()

	root := &Node{
		ID:            companyNumber,
		Name:          companyName,
		Type:          EntityUKCompany,
		CompanyNumber: companyNumber,
		IsActive:      true,
	}

	start := time.Now()
	records, err := b.parties.Parties(ctx, companyNumber)
	b.metrics.ObserveFetchLatency(time.Since(start))
	if err != nil {
		b.metrics.IncrementFetchFailures()
		msg := fmt.Sprintf("Error processing PSCs for %s: %v", companyNumber, err)
		sink.Append(msg)
		root.Err = msg
		b.logger.WarnContext(ctx, "controlling parties fetch failed",
			"company_number", companyNumber,
			"depth", depth,
			"error", err,
		)
		return root
	}

	for _, record := range records {
		// Ceased PSCs are excluded entirely; they never appear as nodes.
		if record.CeasedOn != "" {
			continue
		}

		name := displayName(record)
		entityType := Classify(record)

		id := record.SelfLink
		if id == "" {
			id = fmt.Sprintf("psc_%d", len(root.Children))
		}

		child := &Node{
			ID:                 id,
			Name:               name,
			Type:               entityType,
			CountryOfResidence: record.CountryOfResidence,
			NatureOfControl:    append([]string(nil), record.NaturesOfControl...),
			IsActive:           true,
		}
		if entityType == EntityUKCompany {
			// No registration number means the register can't take us
			// further; the node stays a childless leaf.
			child.CompanyNumber = record.Identification.RegistrationNumber
		}
		root.Children = append(root.Children, child)
	}
	b.metrics.AddNodesBuilt(len(root.Children))

	// Expand UK-company children concurrently. Leaves were appended in
	// provider order above and only their Children/Err fields are attached
	// here, so ordering is untouched. Each branch gets its own visited clone.
	g, gctx := errgroup.WithContext(ctx)
	for _, child := range root.Children {
		if child.Type != EntityUKCompany || child.CompanyNumber == "" {
			continue
		}
		child := child
		branch := visited.Clone()
		g.Go(func() error {
			b.expandChild(gctx, child, branch, sink, depth+1)
			return nil
		})
	}
	_ = g.Wait()

	return root
}

// expandChild runs one recursive expansion and adopts the result onto the
// already-placed leaf: its children list, and its error if the subtree
// reported one. A fault here stays at this child's boundary; siblings and
// ancestors keep processing.
func (b *Builder) expandChild(ctx context.Context, child *Node, visited Visited, sink *ErrorSink, depth int) {
	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("Error processing company %s: %v", child.CompanyNumber, rec)
			sink.Append(msg)
			child.Err = msg
			b.logger.ErrorContext(ctx, "child expansion panicked",
				"company_number", child.CompanyNumber,
				"depth", depth,
				"panic", rec,
			)
		}
	}()

	subtree := b.Build(ctx, child.CompanyNumber, child.Name, visited, sink, depth)
	child.Children = subtree.Children
	if subtree.Err != "" {
		child.Err = subtree.Err
	}
}

// displayName prefers the record's direct name and falls back to the
// structured forename + surname elements.
func displayName(record ControlRecord) string {
	if record.Name != "" {
		return strings.TrimSpace(record.Name)
	}
	return strings.TrimSpace(record.NameElements.Forename + " " + record.NameElements.Surname)
}
