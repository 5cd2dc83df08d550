// Package drdy turns a magnetometer's data-ready interrupt into an
// application callback.
//
// The GPIO edge is handled in interrupt context by disarming the pin and
// signalling a deferred worker. The worker calls the registered Handler and
// then re-arms the pin. Because the pin is disarmed for the whole time an
// event is being handled, at most one event per sensor is ever in flight and
// edges arriving in that window are not observed; the handler is expected to
// read current device state rather than process a backlog.
package drdy

import (
	"context"
	"sync"
	"sync/atomic"

	"iis2mdc-go/services/drdy/internal/deferral"
	"iis2mdc-go/services/drdy/internal/pinmon"
	"iis2mdc-go/types"
)

// rawSampleSize is one XYZ output block (OUTX_L..OUTZ_H).
const rawSampleSize = 6

// Registers is the register-access collaborator. *iis2mdc.Device satisfies it.
type Registers interface {
	// MagneticRaw reads one raw sample; the read clears a latched
	// data-ready condition.
	MagneticRaw(buf []byte) error
	// DRDYOnPinSet enables or disables data-ready assertion on the pin.
	DRDYOnPinSet(enable bool) error
}

// Handler is called from the deferred context, never from interrupt context.
type Handler func(trig types.Trigger)

// Sensor is one magnetometer instance with one data-ready channel.
type Sensor struct {
	regs Registers
	cfg  Config

	handler atomic.Pointer[Handler]

	inited atomic.Bool

	dispatches  uint32
	invocations uint32
	panics      uint32
	rearms      uint32
	rearmFaults uint32

	// mu guards the wiring of the current InitInterrupt. gen changes on
	// every InitInterrupt and Close, so a handler left over from an earlier
	// wiring never touches the current pin.
	mu      sync.Mutex
	gen     uint32
	mon     *pinmon.Monitor
	def     deferral.Deferrer
	cancel  context.CancelFunc
	lastErr error
}

// New returns a sensor; nothing is touched until InitInterrupt or SetTrigger.
func New(regs Registers, cfg Config) *Sensor {
	return &Sensor{regs: regs, cfg: cfg}
}

// Armed reports whether the data-ready pin is currently armed.
func (s *Sensor) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mon != nil && s.mon.State() == pinmon.Armed
}

// Err returns the last re-arm failure, if any. A non-nil value means the pin
// was left disarmed and no further notifications will arrive until the
// sensor is re-initialised.
func (s *Sensor) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Stats returns a snapshot of trigger counters.
func (s *Sensor) Stats() types.TriggerStats {
	st := types.TriggerStats{
		Dispatches:    atomic.LoadUint32(&s.dispatches),
		Invocations:   atomic.LoadUint32(&s.invocations),
		HandlerPanics: atomic.LoadUint32(&s.panics),
		Rearms:        atomic.LoadUint32(&s.rearms),
		RearmFaults:   atomic.LoadUint32(&s.rearmFaults),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mon != nil {
		st.Edges = s.mon.Edges()
		st.DisarmFaults = s.mon.DisarmFaults()
	}
	if g, ok := s.def.(*deferral.Global); ok {
		st.Collapsed = g.Collapsed()
	}
	return st
}
