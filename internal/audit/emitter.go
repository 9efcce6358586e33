// Package audit delivers audit events to external sinks off the request path.
package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/SscSPs/inventory_ledger/internal/platform/metrics"
)

const defaultBufferSize = 256

// Sink receives audit events. Implementations may block; the emitter calls
// them from its own goroutine.
type Sink interface {
	Name() string
	Write(ctx context.Context, event domain.AuditEvent) error
}

// Emitter is a bounded, asynchronous fan-out to a set of sinks.
// Emit never blocks: when the queue is full the event is dropped and logged.
type Emitter struct {
	queue   chan domain.AuditEvent
	sinks   []Sink
	logger  *slog.Logger
	metrics *metrics.Metrics

	wg        sync.WaitGroup
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithBufferSize sets the queue capacity.
func WithBufferSize(n int) Option {
	return func(e *Emitter) {
		if n > 0 {
			e.queue = make(chan domain.AuditEvent, n)
		}
	}
}

// WithLogger sets the logger used for delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics adds a metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Emitter) {
		e.metrics = m
	}
}

// NewEmitter starts the delivery goroutine. Call Close to drain and stop it.
func NewEmitter(sinks []Sink, options ...Option) *Emitter {
	e := &Emitter{
		queue:  make(chan domain.AuditEvent, defaultBufferSize),
		sinks:  sinks,
		logger: slog.Default(),
	}
	for _, option := range options {
		option(e)
	}

	e.wg.Add(1)
	go e.run()
	return e
}

var _ portssvc.AuditEmitter = (*Emitter)(nil)

// Emit enqueues event for delivery.
func (e *Emitter) Emit(ctx context.Context, event domain.AuditEvent) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		e.drop(ctx, event, "emitter closed")
		return
	}

	select {
	case e.queue <- event:
	default:
		e.drop(ctx, event, "queue full")
	}
}

func (e *Emitter) drop(ctx context.Context, event domain.AuditEvent, reason string) {
	e.metrics.AuditDropped()
	middleware.GetLoggerFromCtx(ctx).Warn("Audit event dropped",
		slog.String("reason", reason),
		slog.String("action", string(event.Action)),
		slog.String("entity_type", string(event.EntityType)),
		slog.String("entity_id", event.EntityID))
}

func (e *Emitter) run() {
	defer e.wg.Done()
	for event := range e.queue {
		e.deliver(event)
	}
}

func (e *Emitter) deliver(event domain.AuditEvent) {
	ctx := context.Background()
	for _, sink := range e.sinks {
		if err := sink.Write(ctx, event); err != nil {
			e.metrics.AuditSinkError(sink.Name())
			e.logger.Error("Audit sink failed",
				slog.String("sink", sink.Name()),
				slog.String("action", string(event.Action)),
				slog.String("entity_id", event.EntityID),
				slog.String("error", err.Error()))
		}
	}
	e.metrics.AuditEmitted(string(event.Action))
}

// Close stops accepting events and waits for the queue to drain or ctx to end.
func (e *Emitter) Close(ctx context.Context) error {
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		close(e.queue)
		e.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
