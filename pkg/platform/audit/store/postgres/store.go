package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	audit "github.com/M1rr0rb4all/pscback/pkg/platform/audit"
)

// Store implements audit.Store on PostgreSQL. Events land in a single
// append-only table; payload is stored as JSON next to the indexed columns so
// the schema survives event shape changes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// payload is the JSON column structure. Field names match audit.Event so
// downstream consumers can deserialize without a mapping layer.
type payload struct {
	ID         string `json:"ID"`
	Timestamp  string `json:"Timestamp"`
	RequestID  string `json:"RequestID,omitempty"`
	Subject    string `json:"Subject"`
	Action     string `json:"Action"`
	Decision   string `json:"Decision,omitempty"`
	Reason     string `json:"Reason,omitempty"`
	NodeCount  int    `json:"NodeCount,omitempty"`
	ErrorCount int    `json:"ErrorCount,omitempty"`
}

// Append writes an audit event row.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(payload{
		ID:         eventID.String(),
		Timestamp:  event.Timestamp.Format(time.RFC3339Nano),
		RequestID:  event.RequestID,
		Subject:    event.Subject,
		Action:     event.Action,
		Decision:   event.Decision,
		Reason:     event.Reason,
		NodeCount:  event.NodeCount,
		ErrorCount: event.ErrorCount,
	})
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	const q = `
		INSERT INTO ownership_audit_events (id, occurred_at, subject, action, payload)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.db.ExecContext(ctx, q, eventID, event.Timestamp, event.Subject, event.Action, body); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListBySubject returns events for a subject, oldest first.
func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	const q = `
		SELECT payload FROM ownership_audit_events
		WHERE subject = $1
		ORDER BY occurred_at ASC`
	rows, err := s.db.QueryContext(ctx, q, subject)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var out []audit.Event
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		var p payload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("unmarshal audit payload: %w", err)
		}
		ts, _ := time.Parse(time.RFC3339Nano, p.Timestamp)
		out = append(out, audit.Event{
			Timestamp:  ts,
			RequestID:  p.RequestID,
			Subject:    p.Subject,
			Action:     p.Action,
			Decision:   p.Decision,
			Reason:     p.Reason,
			NodeCount:  p.NodeCount,
			ErrorCount: p.ErrorCount,
		})
	}
	return out, rows.Err()
}
