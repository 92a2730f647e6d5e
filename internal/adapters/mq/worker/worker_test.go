package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/reelscore/reelscore/internal/adapters/mq/queue"
	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// recordingNotifier records delivered notifications and can fail on demand.
type recordingNotifier struct {
	mu        sync.Mutex
	delivered []Notification
	failIDs   map[string]bool
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{failIDs: make(map[string]bool)}
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failIDs[n.ID] {
		return errors.New("delivery refused")
	}
	r.delivered = append(r.delivered, n)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delivered)
}

func note(id string) Notification {
	return Notification{
		ID:          id,
		Kind:        model.KindEvaluationCompleted,
		RecipientID: "player-1",
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestInMemoryWorker_Delivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	notifier := newRecordingNotifier()
	w := NewInMemoryWorker(q, notifier, WithName("test-worker"))

	go w.Run(ctx)

	q.Enqueue(ctx, note("n1"))
	q.Enqueue(ctx, note("n2"))

	waitFor(t, func() bool { return notifier.count() == 2 })

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	if err := w.Shutdown(shutdownCtx); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestInMemoryWorker_SwallowsDeliveryErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	notifier := newRecordingNotifier()
	notifier.failIDs["bad"] = true
	w := NewInMemoryWorker(q, notifier)

	go w.Run(ctx)

	q.Enqueue(ctx, note("bad"))
	q.Enqueue(ctx, note("good"))

	// The failed delivery must not stop the worker
	waitFor(t, func() bool { return notifier.count() == 1 })

	notifier.mu.Lock()
	got := notifier.delivered[0].ID
	notifier.mu.Unlock()
	if got != "good" {
		t.Errorf("expected good to be delivered, got %s", got)
	}
}

func TestInMemoryWorker_StopsOnQueueClose(t *testing.T) {
	ctx := context.Background()

	q := queue.NewInMemoryQueue(queue.WithCapacity(10))
	notifier := newRecordingNotifier()
	w := NewInMemoryWorker(q, notifier)

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	q.Enqueue(ctx, note("n1"))
	waitFor(t, func() bool { return notifier.count() == 1 })

	_ = q.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("worker did not stop after queue close")
	}
}

func TestPool_DrainsQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewInMemoryQueue(queue.WithCapacity(100))
	notifier := newRecordingNotifier()
	pool := NewPool(4, q, notifier)
	pool.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		if !q.Enqueue(ctx, note("n"+string(rune('0'+i%10))+"-"+time.Now().String())) {
			t.Fatalf("enqueue %d failed", i)
		}
	}

	waitFor(t, func() bool { return notifier.count() == n })

	if err := pool.Shutdown(ctx); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestNewPool_DefaultsWorkerCount(t *testing.T) {
	q := queue.NewInMemoryQueue(queue.WithCapacity(1))
	pool := NewPool(0, q, newRecordingNotifier())
	if len(pool.workers) < defaultWorkerCount {
		t.Errorf("expected at least %d workers, got %d", defaultWorkerCount, len(pool.workers))
	}
}

func TestLogNotifier_Notify(t *testing.T) {
	n := NewLogNotifier()
	if err := n.Notify(context.Background(), note("n1")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
