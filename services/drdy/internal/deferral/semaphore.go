package deferral

import (
	"context"
	"math"
	"sync/atomic"
)

// Semaphore is a counting signal. Give never blocks and is safe from
// interrupt context; Take blocks until the count is positive.
type Semaphore struct {
	count atomic.Uint32
	wake  chan struct{}
}

// NewSemaphore returns a semaphore with count 0.
func NewSemaphore() *Semaphore {
	return &Semaphore{wake: make(chan struct{}, 1)}
}

// Give increments the count, saturating at math.MaxUint32.
func (s *Semaphore) Give() {
	for {
		c := s.count.Load()
		if c == math.MaxUint32 {
			break
		}
		if s.count.CompareAndSwap(c, c+1) {
			break
		}
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Take decrements the count, waiting while it is zero. It returns ctx.Err()
// if ctx ends first.
func (s *Semaphore) Take(ctx context.Context) error {
	for {
		c := s.count.Load()
		if c > 0 {
			if s.count.CompareAndSwap(c, c-1) {
				return nil
			}
			continue
		}
		select {
		case <-s.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Count returns the current count.
func (s *Semaphore) Count() uint32 { return s.count.Load() }
