//go:build rp2040 || rp2350

package platform

import (
	"machine"

	"iis2mdc-go/gpio"
)

// DefaultBindings exposes the RP2 bank-0 GPIOs as port "gpio0", matching
// Pico/Pico 2 GP numbering.
func DefaultBindings() (gpio.Bindings, error) {
	r := &gpio.Registry{}
	r.Register(&rp2Port{})
	return r, nil
}

const rp2PinCount = 30

type rp2Port struct {
	cbs   gpio.CallbackList
	flags [rp2PinCount]gpio.Flags
}

func (*rp2Port) Name() string { return "gpio0" }

func (r *rp2Port) ConfigureInput(pin int, flags gpio.Flags) error {
	if pin < 0 || pin >= rp2PinCount {
		return gpio.ErrInvalidPin
	}
	mode := machine.PinInput
	switch {
	case flags&gpio.FlagPullUp != 0:
		mode = machine.PinInputPullup
	case flags&gpio.FlagPullDown != 0:
		mode = machine.PinInputPulldown
	}
	machine.Pin(pin).Configure(machine.PinConfig{Mode: mode})
	r.flags[pin] = flags
	return nil
}

func (r *rp2Port) AddCallback(cb *gpio.Callback) error    { return r.cbs.Add(cb) }
func (r *rp2Port) RemoveCallback(cb *gpio.Callback) error { return r.cbs.Remove(cb) }

// InterruptConfigure is called from interrupt context when a pin disarms
// itself, so it takes no locks.
func (r *rp2Port) InterruptConfigure(pin int, mode gpio.IntMode) error {
	if pin < 0 || pin >= rp2PinCount {
		return gpio.ErrInvalidPin
	}
	p := machine.Pin(pin)
	if mode == gpio.IntDisable {
		var zero machine.PinChange
		return p.SetInterrupt(zero, nil)
	}
	return p.SetInterrupt(toPinChange(mode, r.flags[pin].ActiveLow()), r.isr)
}

func (r *rp2Port) isr(p machine.Pin) { r.cbs.Fire(r, gpio.Bit(int(p))) }

func toPinChange(mode gpio.IntMode, activeLow bool) machine.PinChange {
	switch mode {
	case gpio.IntEdgeToActive:
		if activeLow {
			return machine.PinFalling
		}
		return machine.PinRising
	case gpio.IntEdgeToInactive:
		if activeLow {
			return machine.PinRising
		}
		return machine.PinFalling
	default:
		return machine.PinToggle
	}
}
