// Package monitor carries output samples to an external display. Sends
// are best effort and never block the audio thread.
package monitor

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/justyntemme/fxroute/pkg/dsp"
)

// Samples is the number of floats per message: one block of interleaved
// stereo frames.
const Samples = dsp.MonitorSamples

// DefaultName is the queue name used by the engine.
const DefaultName = "/fxroute_samples_msg_queue"

var (
	// ErrNotOpen is returned when operating on a closed queue.
	ErrNotOpen = errors.New("monitor: queue not open")
	// ErrAlreadyOpen is returned by Open on an open queue.
	ErrAlreadyOpen = errors.New("monitor: queue already open")
)

// Message is one fixed-size block of monitoring samples.
type Message struct {
	Samples [Samples]float32
}

// Sender is the producer side used by the engine.
type Sender interface {
	// TrySend posts msg without blocking and reports whether it was queued.
	TrySend(msg *Message) bool
}

type pipe struct {
	ch   chan Message
	done chan struct{}
}

// Queue is a named, bounded single-producer single-consumer channel.
// The zero value is closed.
type Queue struct {
	name  string
	depth int
	p     atomic.Pointer[pipe]

	sent    atomic.Uint64
	dropped atomic.Uint64
}

// NewQueue creates a closed queue holding at most depth messages.
func NewQueue(name string, depth int) *Queue {
	if depth < 1 {
		depth = 1
	}
	return &Queue{name: name, depth: depth}
}

// Open creates and opens a queue in one step.
func Open(name string, depth int) (*Queue, error) {
	q := NewQueue(name, depth)
	if err := q.Open(); err != nil {
		return nil, err
	}
	return q, nil
}

// Name returns the queue name.
func (q *Queue) Name() string {
	return q.name
}

// Open allocates the channel. Messages from an earlier session are gone.
func (q *Queue) Open() error {
	p := &pipe{
		ch:   make(chan Message, q.depth),
		done: make(chan struct{}),
	}
	if !q.p.CompareAndSwap(nil, p) {
		return ErrAlreadyOpen
	}
	return nil
}

// IsOpen reports whether the queue accepts messages.
func (q *Queue) IsOpen() bool {
	return q.p.Load() != nil
}

// Close stops the queue and wakes a blocked receiver.
func (q *Queue) Close() error {
	p := q.p.Swap(nil)
	if p == nil {
		return ErrNotOpen
	}
	close(p.done)
	return nil
}

// TrySend copies msg into the queue. It fails when the queue is closed or full.
func (q *Queue) TrySend(msg *Message) bool {
	p := q.p.Load()
	if p == nil {
		q.dropped.Add(1)
		return false
	}
	select {
	case p.ch <- *msg:
		q.sent.Add(1)
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Receive blocks until a message arrives, the queue closes or ctx ends.
func (q *Queue) Receive(ctx context.Context, msg *Message) error {
	p := q.p.Load()
	if p == nil {
		return ErrNotOpen
	}
	select {
	case m := <-p.ch:
		*msg = m
		return nil
	case <-p.done:
		return ErrNotOpen
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Len returns the number of messages waiting for the receiver.
func (q *Queue) Len() int {
	p := q.p.Load()
	if p == nil {
		return 0
	}
	return len(p.ch)
}

// Sent returns the number of queued messages.
func (q *Queue) Sent() uint64 {
	return q.sent.Load()
}

// Dropped returns the number of failed sends.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}
