// Package pinmon owns the GPIO input wired to a sensor's data-ready output.
//
// On an edge the monitor disarms the pin and calls onEdge, both in interrupt
// context. The pin stays disarmed until Arm is called again, so at most one
// event per pin is ever in flight.
package pinmon

import (
	"sync/atomic"

	"iis2mdc-go/errcode"
	"iis2mdc-go/gpio"
)

// State is the arming state of the monitored pin.
type State uint32

const (
	Disarmed State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "disarmed"
}

type Monitor struct {
	port   gpio.Port
	pin    int
	onEdge func()
	cb     *gpio.Callback

	state       atomic.Uint32
	edges       uint32 // edges seen in interrupt context
	disarmFault uint32 // disarm failures in interrupt context
}

// New returns a monitor for pin on port. onEdge must not block.
func New(port gpio.Port, pin int, onEdge func()) *Monitor {
	m := &Monitor{port: port, pin: pin, onEdge: onEdge}
	m.cb = gpio.NewCallback(m.isr, gpio.Bit(pin))
	return m
}

// Configure sets the pin as input with flags.
func (m *Monitor) Configure(flags gpio.Flags) error {
	return errcode.Wrap(errcode.IOError, "configure", m.port.ConfigureInput(m.pin, flags))
}

// Install registers the edge callback with the port.
func (m *Monitor) Install() error {
	return errcode.Wrap(errcode.CallbackInstall, "add_callback", m.port.AddCallback(m.cb))
}

// Uninstall removes the edge callback and disarms the pin.
func (m *Monitor) Uninstall() error {
	derr := m.Disarm()
	if err := m.port.RemoveCallback(m.cb); err != nil {
		return err
	}
	return derr
}

// Arm enables edge-to-active detection.
func (m *Monitor) Arm() error {
	if err := m.port.InterruptConfigure(m.pin, gpio.IntEdgeToActive); err != nil {
		return err
	}
	m.state.Store(uint32(Armed))
	return nil
}

// Disarm disables edge detection.
func (m *Monitor) Disarm() error {
	if err := m.port.InterruptConfigure(m.pin, gpio.IntDisable); err != nil {
		return err
	}
	m.state.Store(uint32(Disarmed))
	return nil
}

// isr runs in interrupt context: disarm, hand off, nothing else.
func (m *Monitor) isr(_ gpio.Port, _ uint32) {
	atomic.AddUint32(&m.edges, 1)
	if m.Disarm() != nil {
		atomic.AddUint32(&m.disarmFault, 1)
	}
	m.onEdge()
}

func (m *Monitor) State() State         { return State(m.state.Load()) }
func (m *Monitor) Pin() int             { return m.pin }
func (m *Monitor) Port() gpio.Port      { return m.port }
func (m *Monitor) Edges() uint32        { return atomic.LoadUint32(&m.edges) }
func (m *Monitor) DisarmFaults() uint32 { return atomic.LoadUint32(&m.disarmFault) }
