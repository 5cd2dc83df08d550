//go:build linux && !(rp2040 || rp2350)

package platform

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"iis2mdc-go/gpio"
	"iis2mdc-go/x/logx"
)

// edgePoll bounds each WaitForEdge so watchers notice Close.
const edgePoll = 200 * time.Millisecond

// DefaultBindings initialises the periph.io host drivers and exposes every
// registered GPIO (by number, e.g. "17") through port "gpio0".
func DefaultBindings() (gpio.Bindings, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	r := &gpio.Registry{}
	r.Register(NewPeriphPort("gpio0"))
	return r, nil
}

// PeriphPort adapts periph.io pins to gpio.Port. Edge detection stays enabled
// in the kernel once a pin is first armed; arming and disarming gate delivery
// in the watcher goroutine.
type PeriphPort struct {
	name string
	cbs  gpio.CallbackList

	mu   sync.Mutex
	pins map[int]*periphPin
	stop chan struct{}
}

type periphPin struct {
	io    pgpio.PinIO
	pull  pgpio.Pull
	flags gpio.Flags
	edge  pgpio.Edge
	armed atomic.Bool
	watch bool
}

func NewPeriphPort(name string) *PeriphPort {
	return &PeriphPort{name: name, pins: map[int]*periphPin{}, stop: make(chan struct{})}
}

func (p *PeriphPort) Name() string { return p.name }

func (p *PeriphPort) ConfigureInput(pin int, flags gpio.Flags) error {
	io := gpioreg.ByName(strconv.Itoa(pin))
	if io == nil {
		return gpio.ErrInvalidPin
	}
	pull := pgpio.Float
	switch {
	case flags&gpio.FlagPullUp != 0:
		pull = pgpio.PullUp
	case flags&gpio.FlagPullDown != 0:
		pull = pgpio.PullDown
	}
	if err := io.In(pull, pgpio.NoEdge); err != nil {
		return err
	}
	p.mu.Lock()
	p.pins[pin] = &periphPin{io: io, pull: pull, flags: flags, edge: pgpio.NoEdge}
	p.mu.Unlock()
	return nil
}

func (p *PeriphPort) AddCallback(cb *gpio.Callback) error    { return p.cbs.Add(cb) }
func (p *PeriphPort) RemoveCallback(cb *gpio.Callback) error { return p.cbs.Remove(cb) }

func (p *PeriphPort) InterruptConfigure(pin int, mode gpio.IntMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	pp, ok := p.pins[pin]
	if !ok {
		return gpio.ErrInvalidPin
	}
	if mode == gpio.IntDisable {
		pp.armed.Store(false)
		return nil
	}
	want := toEdge(mode, pp.flags.ActiveLow())
	if pp.edge != want {
		if err := pp.io.In(pp.pull, want); err != nil {
			return err
		}
		pp.edge = want
	}
	pp.armed.Store(true)
	if !pp.watch {
		pp.watch = true
		go p.watchLoop(pin, pp)
	}
	return nil
}

// Close stops all watcher goroutines.
func (p *PeriphPort) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
}

func (p *PeriphPort) watchLoop(pin int, pp *periphPin) {
	logx.Infof("gpio: watching %s pin %d for %s", p.name, pin, pp.edge)
	for {
		select {
		case <-p.stop:
			return
		default:
		}
		if !pp.io.WaitForEdge(edgePoll) {
			continue
		}
		if pp.armed.Load() {
			p.cbs.Fire(p, gpio.Bit(pin))
		}
	}
}

func toEdge(mode gpio.IntMode, activeLow bool) pgpio.Edge {
	switch mode {
	case gpio.IntEdgeToActive:
		if activeLow {
			return pgpio.FallingEdge
		}
		return pgpio.RisingEdge
	case gpio.IntEdgeToInactive:
		if activeLow {
			return pgpio.RisingEdge
		}
		return pgpio.FallingEdge
	default:
		return pgpio.BothEdges
	}
}
