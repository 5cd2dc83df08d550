// Package gpiofake provides an in-memory gpio.Port for host-side tests.
//
// Edges are produced by Set/Pulse and delivered synchronously on the calling
// goroutine, which stands in for interrupt context.
package gpiofake

import (
	"sync"

	"iis2mdc-go/gpio"
)

type pinState struct {
	configured bool
	flags      gpio.Flags
	mode       gpio.IntMode
	level      bool // physical
	intCalls   int
}

// Port implements gpio.Port.
type Port struct {
	name string

	mu   sync.Mutex
	pins []pinState
	cbs  gpio.CallbackList

	configureErr error
	callbackErr  error
	armErr       error
	disarmErr    error
}

// New returns a port with n pins, all unconfigured with interrupts disabled.
func New(name string, n int) *Port {
	return &Port{name: name, pins: make([]pinState, n)}
}

func (p *Port) Name() string { return p.name }

func (p *Port) ConfigureInput(pin int, flags gpio.Flags) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(pin); err != nil {
		return err
	}
	if p.configureErr != nil {
		return p.configureErr
	}
	p.pins[pin].configured = true
	p.pins[pin].flags = flags
	return nil
}

func (p *Port) AddCallback(cb *gpio.Callback) error {
	p.mu.Lock()
	err := p.callbackErr
	p.mu.Unlock()
	if err != nil {
		return err
	}
	return p.cbs.Add(cb)
}

func (p *Port) RemoveCallback(cb *gpio.Callback) error { return p.cbs.Remove(cb) }

func (p *Port) InterruptConfigure(pin int, mode gpio.IntMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(pin); err != nil {
		return err
	}
	p.pins[pin].intCalls++
	if mode != gpio.IntDisable && p.armErr != nil {
		return p.armErr
	}
	if mode == gpio.IntDisable && p.disarmErr != nil {
		return p.disarmErr
	}
	p.pins[pin].mode = mode
	return nil
}

// Set drives the physical level of pin and fires callbacks if the resulting
// edge matches the pin's interrupt mode.
func (p *Port) Set(pin int, level bool) {
	p.mu.Lock()
	if p.check(pin) != nil {
		p.mu.Unlock()
		return
	}
	st := &p.pins[pin]
	oldActive := st.level != st.flags.ActiveLow()
	st.level = level
	newActive := level != st.flags.ActiveLow()
	fire := false
	if oldActive != newActive {
		switch st.mode {
		case gpio.IntEdgeToActive:
			fire = newActive
		case gpio.IntEdgeToInactive:
			fire = !newActive
		case gpio.IntEdgeBoth:
			fire = true
		}
	}
	p.mu.Unlock()
	if fire {
		p.cbs.Fire(p, gpio.Bit(pin))
	}
}

// Pulse drives pin active then inactive, honouring FlagActiveLow.
func (p *Port) Pulse(pin int) {
	low := p.Flags(pin).ActiveLow()
	p.Set(pin, !low)
	p.Set(pin, low)
}

// Mode returns the current interrupt mode of pin.
func (p *Port) Mode(pin int) gpio.IntMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins[pin].mode
}

// Flags returns the flags pin was configured with.
func (p *Port) Flags(pin int) gpio.Flags {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins[pin].flags
}

// Configured reports whether ConfigureInput succeeded for pin.
func (p *Port) Configured(pin int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins[pin].configured
}

// InterruptCalls counts InterruptConfigure calls for pin, failed ones included.
func (p *Port) InterruptCalls(pin int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins[pin].intCalls
}

// Callbacks reports the number of installed callbacks.
func (p *Port) Callbacks() int { return p.cbs.Len() }

// FailConfigure makes subsequent ConfigureInput calls return err (nil clears).
func (p *Port) FailConfigure(err error) { p.mu.Lock(); p.configureErr = err; p.mu.Unlock() }

// FailAddCallback makes subsequent AddCallback calls return err (nil clears).
func (p *Port) FailAddCallback(err error) { p.mu.Lock(); p.callbackErr = err; p.mu.Unlock() }

// FailArm makes subsequent non-disable InterruptConfigure calls return err
// (nil clears).
func (p *Port) FailArm(err error) { p.mu.Lock(); p.armErr = err; p.mu.Unlock() }

// FailDisarm makes subsequent IntDisable InterruptConfigure calls return err
// (nil clears).
func (p *Port) FailDisarm(err error) { p.mu.Lock(); p.disarmErr = err; p.mu.Unlock() }

func (p *Port) check(pin int) error {
	if pin < 0 || pin >= len(p.pins) {
		return gpio.ErrInvalidPin
	}
	return nil
}
