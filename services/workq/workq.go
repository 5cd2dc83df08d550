// Package workq is a shared cooperative work queue: many producers, one
// goroutine running items to completion one at a time.
//
// Submit is safe from interrupt context and never fails for an item that is
// not already pending: items link themselves into the queue, so there is no
// fixed capacity to run out of. An item that is already pending is not
// queued twice.
package workq

import (
	"context"
	"sync/atomic"
)

// Work is a unit of deferred work. Create with NewWork; reuse freely.
type Work struct {
	fn      func()
	pending atomic.Bool
	next    *Work // owned by the queue while pending
}

func NewWork(fn func()) *Work { return &Work{fn: fn} }

// Pending reports whether the item is queued and not yet started.
func (w *Work) Pending() bool { return w.pending.Load() }

type Queue struct {
	head    atomic.Pointer[Work] // newest first
	wake    chan struct{}
	stopped chan struct{}
	started atomic.Bool

	batch    []*Work
	collapse uint32 // already pending
}

// New returns a queue. depth sizes the worker's batch buffer for the
// expected number of concurrently pending items; more are still accepted.
func New(depth int) *Queue {
	if depth <= 0 {
		depth = 16
	}
	return &Queue{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
		batch:   make([]*Work, 0, depth),
	}
}

// Start runs the queue until ctx is done. Extra calls are no-ops.
func (q *Queue) Start(ctx context.Context) {
	if !q.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(q.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case <-q.wake:
			}
			for q.runBatch(ctx) {
			}
		}
	}()
}

// runBatch takes everything submitted so far and runs it oldest first.
// It reports whether anything was taken.
func (q *Queue) runBatch(ctx context.Context) bool {
	w := q.head.Swap(nil)
	if w == nil {
		return false
	}
	b := q.batch[:0]
	for ; w != nil; w = w.next {
		b = append(b, w)
	}
	for i := len(b) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			// Put the rest back so a later Start does not lose them.
			for j := i; j >= 0; j-- {
				q.push(b[j])
			}
			q.batch = b[:0]
			return false
		}
		w := b[i]
		b[i] = nil
		// Clear before running so the handler may resubmit itself.
		w.pending.Store(false)
		w.fn()
	}
	q.batch = b[:0]
	return true
}

// Stopped is closed once the queue goroutine has exited.
func (q *Queue) Stopped() <-chan struct{} { return q.stopped }

// Submit queues w. It returns false without queuing only if w is already
// pending. Never blocks.
func (q *Queue) Submit(w *Work) bool {
	if !w.pending.CompareAndSwap(false, true) {
		atomic.AddUint32(&q.collapse, 1)
		return false
	}
	q.push(w)
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

func (q *Queue) push(w *Work) {
	for {
		old := q.head.Load()
		w.next = old
		if q.head.CompareAndSwap(old, w) {
			return
		}
	}
}

// Collapsed counts submissions ignored because the item was already pending.
func (q *Queue) Collapsed() uint32 { return atomic.LoadUint32(&q.collapse) }
