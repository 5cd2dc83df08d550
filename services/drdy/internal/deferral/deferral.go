// Package deferral moves interrupt handling out of interrupt context.
//
// Two strategies exist: OwnThread, a dedicated goroutine woken by a counting
// semaphore, and Global, an item on a shared workq.Queue. Submit on either is
// non-blocking and safe from interrupt context.
package deferral

import (
	"context"
	"sync/atomic"

	"iis2mdc-go/services/workq"
)

// Deferrer runs a fixed handler outside interrupt context.
type Deferrer interface {
	// Start begins servicing submissions until ctx is done.
	Start(ctx context.Context)
	// Submit requests one run of the handler.
	Submit()
}

// OwnThread services submissions on its own goroutine, one at a time, in the
// order they were given.
type OwnThread struct {
	sem     *Semaphore
	handle  func()
	stopped chan struct{}
}

func NewOwnThread(handle func()) *OwnThread {
	return &OwnThread{sem: NewSemaphore(), handle: handle, stopped: make(chan struct{})}
}

func (o *OwnThread) Start(ctx context.Context) {
	go func() {
		defer close(o.stopped)
		for {
			if err := o.sem.Take(ctx); err != nil {
				return
			}
			o.handle()
		}
	}()
}

func (o *OwnThread) Submit() { o.sem.Give() }

// Stopped is closed once the worker goroutine has exited.
func (o *OwnThread) Stopped() <-chan struct{} { return o.stopped }

// Global services submissions on a shared queue. Submitting while the item is
// still pending is a no-op.
type Global struct {
	q         *workq.Queue
	work      *workq.Work
	collapsed uint32
}

func NewGlobal(q *workq.Queue, handle func()) *Global {
	return &Global{q: q, work: workq.NewWork(handle)}
}

// Start does nothing: the shared queue is started by its owner. ctx is
// accepted to satisfy Deferrer.
func (g *Global) Start(context.Context) {}

func (g *Global) Submit() {
	if !g.q.Submit(g.work) {
		atomic.AddUint32(&g.collapsed, 1)
	}
}

// Collapsed counts submissions dropped because the item was already queued.
func (g *Global) Collapsed() uint32 { return atomic.LoadUint32(&g.collapsed) }
