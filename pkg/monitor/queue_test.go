package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueueLifecycle(t *testing.T) {
	q := NewQueue(DefaultName, 1)
	msg := &Message{}

	if q.IsOpen() {
		t.Fatal("new queue should be closed")
	}
	if q.TrySend(msg) {
		t.Error("send on an unopened queue should fail")
	}
	if err := q.Close(); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Close on closed queue = %v, want ErrNotOpen", err)
	}

	if err := q.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := q.Open(); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("second Open = %v, want ErrAlreadyOpen", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if q.TrySend(msg) {
		t.Error("send after close should fail")
	}
	if err := q.Receive(context.Background(), msg); !errors.Is(err, ErrNotOpen) {
		t.Errorf("Receive after close = %v, want ErrNotOpen", err)
	}
	if q.Dropped() != 2 || q.Sent() != 0 {
		t.Errorf("sent/dropped = %d/%d", q.Sent(), q.Dropped())
	}
}

func TestQueueNeverBlocks(t *testing.T) {
	q, err := Open("test", 2)
	if err != nil {
		t.Fatal(err)
	}
	defer q.Close()

	msg := &Message{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			msg.Samples[0] = float32(i)
			q.TrySend(msg)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TrySend blocked on a full queue")
	}
	if q.Sent() != 2 || q.Dropped() != 98 {
		t.Errorf("sent/dropped = %d/%d, want 2/98", q.Sent(), q.Dropped())
	}

	// The oldest messages survive
	var got Message
	if err := q.Receive(context.Background(), &got); err != nil || got.Samples[0] != 0 {
		t.Errorf("first message = %f, %v", got.Samples[0], err)
	}
}

func TestQueueReceive(t *testing.T) {
	q, _ := Open("test", 4)

	var wg sync.WaitGroup
	var received []float32
	wg.Add(1)
	go func() {
		defer wg.Done()
		var msg Message
		for q.Receive(context.Background(), &msg) == nil {
			received = append(received, msg.Samples[Samples-1])
		}
	}()

	msg := &Message{}
	for i := 1; i <= 3; i++ {
		msg.Samples[Samples-1] = float32(i)
		for !q.TrySend(msg) {
			time.Sleep(time.Millisecond)
		}
	}
	// Wait for the consumer to drain before closing
	deadline := time.Now().Add(time.Second)
	for len(q.p.Load().ch) > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)
	q.Close()
	wg.Wait()

	if len(received) != 3 || received[0] != 1 || received[2] != 3 {
		t.Errorf("received %v, want [1 2 3]", received)
	}
}

func TestQueueReceiveContext(t *testing.T) {
	q, _ := Open("test", 1)
	defer q.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	var msg Message
	if err := q.Receive(ctx, &msg); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Receive = %v, want deadline exceeded", err)
	}
}

func TestTrySendNoAllocations(t *testing.T) {
	q, _ := Open("test", 1)
	defer q.Close()
	msg := &Message{}
	allocs := testing.AllocsPerRun(100, func() {
		q.TrySend(msg)
	})
	if allocs != 0 {
		t.Errorf("allocations = %f, want 0", allocs)
	}
}

func TestQueueLen(t *testing.T) {
	q := NewQueue("test", 4)
	if q.Len() != 0 {
		t.Errorf("closed queue len = %d", q.Len())
	}
	q.Open()
	defer q.Close()
	q.TrySend(&Message{})
	q.TrySend(&Message{})
	if q.Len() != 2 {
		t.Errorf("len = %d, want 2", q.Len())
	}
}
