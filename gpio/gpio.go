// Package gpio is the GPIO port contract consumed by the trigger core.
//
// A Port is one GPIO controller (for example "gpio0"). Pins are addressed by
// number within the port. Interrupt callbacks are registered per port with a
// pin mask and are invoked in interrupt context: they must not block.
package gpio

import (
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrNilCallback     = errors.New("gpio: nil callback")
	ErrUnknownCallback = errors.New("gpio: callback not registered")
	ErrInvalidPin      = errors.New("gpio: invalid pin")
)

// Flags are electrical options applied when a pin is configured as input.
type Flags uint8

const (
	FlagActiveLow Flags = 1 << iota
	FlagPullUp
	FlagPullDown
)

func (f Flags) ActiveLow() bool { return f&FlagActiveLow != 0 }

// IntMode selects edge detection for a pin.
type IntMode uint8

const (
	IntDisable IntMode = iota
	IntEdgeToActive
	IntEdgeToInactive
	IntEdgeBoth
)

func (m IntMode) String() string {
	switch m {
	case IntEdgeToActive:
		return "edge_to_active"
	case IntEdgeToInactive:
		return "edge_to_inactive"
	case IntEdgeBoth:
		return "edge_both"
	default:
		return "disabled"
	}
}

// Handler runs in interrupt context. pins has a bit set for each pin that fired.
type Handler func(port Port, pins uint32)

// Callback binds a handler to the pins it cares about.
type Callback struct {
	Handler Handler
	PinMask uint32
}

// NewCallback returns a callback for the given pin mask.
func NewCallback(h Handler, pinMask uint32) *Callback {
	return &Callback{Handler: h, PinMask: pinMask}
}

// Bit returns the mask bit for pin n.
func Bit(n int) uint32 { return 1 << uint(n) }

// Port is one GPIO controller.
type Port interface {
	Name() string
	ConfigureInput(pin int, flags Flags) error
	AddCallback(cb *Callback) error
	RemoveCallback(cb *Callback) error
	InterruptConfigure(pin int, mode IntMode) error
}

// Bindings resolves GPIO ports by name.
type Bindings interface {
	Lookup(name string) (Port, bool)
}

// Registry is a name -> Port table. The zero value is ready to use.
type Registry struct {
	mu    sync.RWMutex
	ports map[string]Port
}

// Register adds a port under its own name. Registering the same name twice panics.
func (r *Registry) Register(p Port) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ports == nil {
		r.ports = make(map[string]Port)
	}
	if _, exists := r.ports[p.Name()]; exists {
		panic("gpio: duplicate port " + p.Name())
	}
	r.ports[p.Name()] = p
}

func (r *Registry) Lookup(name string) (Port, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.ports[name]
	return p, ok
}

// CallbackList is the callback bookkeeping shared by port implementations.
// Add and Remove swap in a fresh slice under a lock; Fire only loads the
// current slice, so it is safe to call from interrupt context.
type CallbackList struct {
	mu  sync.Mutex
	cbs atomic.Pointer[[]*Callback]
}

func (l *CallbackList) Add(cb *Callback) error {
	if cb == nil || cb.Handler == nil {
		return ErrNilCallback
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.load()
	for _, c := range cur {
		if c == cb {
			return nil
		}
	}
	next := make([]*Callback, 0, len(cur)+1)
	next = append(append(next, cur...), cb)
	l.cbs.Store(&next)
	return nil
}

func (l *CallbackList) Remove(cb *Callback) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.load()
	for i, c := range cur {
		if c == cb {
			next := make([]*Callback, 0, len(cur)-1)
			next = append(append(next, cur[:i]...), cur[i+1:]...)
			l.cbs.Store(&next)
			return nil
		}
	}
	return ErrUnknownCallback
}

// Fire invokes every callback whose mask intersects pins.
func (l *CallbackList) Fire(port Port, pins uint32) {
	for _, c := range l.load() {
		if c.PinMask&pins != 0 {
			c.Handler(port, pins&c.PinMask)
		}
	}
}

// Len reports the number of registered callbacks.
func (l *CallbackList) Len() int { return len(l.load()) }

func (l *CallbackList) load() []*Callback {
	if p := l.cbs.Load(); p != nil {
		return *p
	}
	return nil
}
