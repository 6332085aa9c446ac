// Package publisher emits audit events to an audit.Store.
//
// In sync mode (the default) Emit writes through to the store. With
// WithAsyncBuffer, Emit enqueues and a single goroutine drains the queue;
// Close drains what is left before returning.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "calibra/pkg/domain"
	audit "calibra/pkg/platform/audit"
)

// ErrBufferFull is returned by async Emit when the queue is full and ctx is done.
var ErrBufferFull = errors.New("audit buffer full")

// ErrClosed is returned by Emit once Close has been called.
var ErrClosed = errors.New("audit publisher closed")

type Publisher struct {
	store  audit.Store
	logger *slog.Logger

	buffer int
	queue  chan audit.Event
	wg     sync.WaitGroup

	// mu guards closed and the queue send against Close.
	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer switches to async mode with a queue of the given size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.buffer = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer > 0 {
		p.queue = make(chan audit.Event, p.buffer)
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an event, stamping Timestamp and Category when unset.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if p.queue == nil {
		return p.store.Append(ctx, event)
	}

	select {
	case p.queue <- event:
		return nil
	default:
	}
	select {
	case p.queue <- event:
		return nil
	case <-ctx.Done():
		return ErrBufferFull
	}
}

func (p *Publisher) List(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	return p.store.ListByUser(ctx, userID)
}

// Close stops accepting events and waits for the queue to drain. Later
// calls are no-ops.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.queue != nil {
		close(p.queue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.queue {
		// The emitting request may already be gone; persist on a fresh context.
		if err := p.store.Append(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Error("failed to persist audit event",
				"action", event.Action,
				"error", err,
			)
		}
	}
}
