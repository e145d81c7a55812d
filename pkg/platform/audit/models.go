package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time
	RequestID string // Correlation ID from HTTP request context
	Subject   string // Company number the resolution was rooted at
	Action    string // One of the AuditEvent constants
	Decision  string // Outcome summary (e.g. "resolved", "not_found")
	Reason    string // Failure reason when the action is a failure event
	// NodeCount and ErrorCount describe the produced tree for completed
	// resolutions; zero for request-aborting failures.
	NodeCount  int
	ErrorCount int
}

type AuditEvent string

const (
	EventOwnershipResolved AuditEvent = "ownership_resolved"
	EventResolutionFailed  AuditEvent = "ownership_resolution_failed"
)

// Store persists audit events. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
