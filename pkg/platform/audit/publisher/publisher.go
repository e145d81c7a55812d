// Package publisher emits audit events to a store, synchronously by default or
// through a buffered channel when async mode is enabled.
package publisher

import (
	"context"
	"sync"
	"time"

	audit "github.com/M1rr0rb4all/pscback/pkg/platform/audit"
)

// Publisher fans audit events into a Store. The zero-option publisher writes
// synchronously so failures surface to the caller; WithAsyncBuffer trades that
// for non-blocking emission on the request path.
type Publisher struct {
	store audit.Store

	inbox chan audit.Event
	wg    sync.WaitGroup
	once  sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous emission with the given channel size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// NewPublisher builds a publisher around a store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an event. Sync mode returns the store error; async mode only
// fails if the publisher is already closed.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}
	p.inbox <- event
	return nil
}

// ListBySubject reads back events for a subject from the underlying store.
func (p *Publisher) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	return p.store.ListBySubject(ctx, subject)
}

// Close drains pending async events and stops the worker. Safe to call twice.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		// Store errors in async mode are dropped deliberately: the audit
		// trail is best-effort on this path, and the request that produced
		// the event has already completed.
		_ = p.store.Append(context.Background(), event)
	}
}
