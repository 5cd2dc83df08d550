package drdy

import (
	"sync/atomic"

	"iis2mdc-go/services/drdy/internal/pinmon"
	"iis2mdc-go/types"
	"iis2mdc-go/x/logx"
)

// handleInterrupt is the deferred half of a data-ready event for the wiring
// identified by gen.
func (s *Sensor) handleInterrupt(mon *pinmon.Monitor, gen uint32) {
	if !s.current(gen) {
		return
	}
	atomic.AddUint32(&s.dispatches, 1)

	if h := s.handler.Load(); h != nil {
		s.invoke(*h)
	}

	// Re-arm whatever happened above; without it the sensor goes silent.
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return // closed while the event was in flight
	}
	err := mon.Arm()
	if err != nil {
		s.lastErr = err
	}
	s.mu.Unlock()

	if err != nil {
		atomic.AddUint32(&s.rearmFaults, 1)
		logx.Errorf("drdy: re-arm of %s pin %d failed, notifications stopped: %v",
			mon.Port().Name(), mon.Pin(), err)
		return
	}
	atomic.AddUint32(&s.rearms, 1)
}

func (s *Sensor) current(gen uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

func (s *Sensor) invoke(h Handler) {
	defer func() {
		if r := recover(); r != nil {
			atomic.AddUint32(&s.panics, 1)
			logx.Errorf("drdy: data-ready handler panicked: %v", r)
		}
	}()
	atomic.AddUint32(&s.invocations, 1)
	h(types.DataReady)
}
