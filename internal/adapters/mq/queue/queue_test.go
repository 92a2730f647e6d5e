package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/reelscore/reelscore/internal/domain/model"
)

func note(id string) Notification {
	return Notification{
		ID:          id,
		Kind:        model.KindEvaluationCompleted,
		RecipientID: "player-1",
	}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	if !q.Enqueue(ctx, note("n1")) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	out := q.Dequeue(ctx)
	n := <-out
	if n.ID != "n1" {
		t.Errorf("expected n1, got %v", n.ID)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, note("n1")) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, note("n2")) {
		t.Error("expected enqueue to succeed")
	}

	// Full queue drops instead of blocking
	if q.Enqueue(ctx, note("n3")) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if q.IsClosed() {
		t.Error("expected new queue to be open")
	}

	if !q.Enqueue(ctx, note("n1")) {
		t.Error("expected enqueue to succeed")
	}

	if err := q.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to report closed")
	}

	// Enqueue after close drops
	if q.Enqueue(ctx, note("n2")) {
		t.Error("expected enqueue to fail after close")
	}

	// Double close is a no-op
	if err := q.Close(); err != nil {
		t.Errorf("unexpected double close error: %v", err)
	}

	// Buffered notifications still drain, then the channel closes
	out := q.Dequeue(ctx)
	n, ok := <-out
	if !ok || n.ID != "n1" {
		t.Errorf("expected buffered n1, got %v (ok=%v)", n.ID, ok)
	}
	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected dequeue channel to close")
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for dequeue channel to close")
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()
	numGoroutines := 10
	numNotes := 100

	// Start producer goroutines
	var producers sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		producers.Add(1)
		go func(id int) {
			defer producers.Done()
			for j := 0; j < numNotes; j++ {
				n := note(fmt.Sprintf("n%d_%d", id, j))
				for !q.Enqueue(ctx, n) {
					time.Sleep(time.Millisecond)
				}
			}
		}(i)
	}

	// Start consumer goroutines
	consumed := make(chan string, numGoroutines*numNotes)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			for n := range q.Dequeue(ctx) {
				consumed <- n.ID
			}
		}()
	}

	producers.Wait()
	_ = q.Close()

	seen := make(map[string]bool)
	timeout := time.After(5 * time.Second)
	for len(seen) < numGoroutines*numNotes {
		select {
		case id := <-consumed:
			if seen[id] {
				t.Errorf("notification %s consumed twice", id)
			}
			seen[id] = true
		case <-timeout:
			t.Fatalf("timed out: consumed %d of %d", len(seen), numGoroutines*numNotes)
		}
	}
}
