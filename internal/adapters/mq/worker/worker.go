// Package worker drains the notification queue and hands events to the
// delivery collaborator. Delivery is best-effort: failures are logged
// and counted, never propagated back to the evaluation transaction.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/pkg/logger"
	"github.com/reelscore/reelscore/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 4
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Notification is what workers read off the queue.
type Notification = model.Notification

// Notifier delivers a notification to its recipient. Implementations
// own the transport (email, in-app); the core only decides what to say
// and to whom.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Queue defines how workers receive notifications.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Notification
}

// Worker processes notifications until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for delivering notifications.
type InMemoryWorker struct {
	queue    Queue
	notifier Notifier
	name     string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, notifier Notifier, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		notifier: notifier,
		name:     "notifier",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("notifier"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "notifier" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	events := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case n, ok := <-events:
			if !ok {
				return
			}
			w.deliver(ctx, n)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// deliver hands one notification to the notifier. Errors are swallowed
// after logging; the report and state transition are the source of
// truth, notifications are a side channel.
func (w *InMemoryWorker) deliver(ctx context.Context, n Notification) {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.notifier.Notify(ctx, n); err != nil {
		metrics.RecordNotificationError()
		metrics.RecordErrorByComponent("worker", "delivery_error")
		w.logger.Error(ctx, "notification delivery failed",
			logger.String("kind", string(n.Kind)),
			logger.String("recipient", n.RecipientID),
			logger.Error(err),
		)
		return
	}

	metrics.RecordNotificationSent()
}

// Pool manages multiple notification workers.
type Pool struct {
	workers  []*InMemoryWorker
	queue    Queue
	notifier Notifier

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, notifier Notifier) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
		if n := runtime.NumCPU(); n > workerCount {
			workerCount = n
		}
	}

	pool := &Pool{
		workers:  make([]*InMemoryWorker, workerCount),
		queue:    queue,
		notifier: notifier,
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("notifier-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			notifier,
			WithName("notifier-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		select {
		case <-w.shutdown:
		default:
			close(w.shutdown)
		}
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown closes the queue and waits for all workers to drain.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
