package drdy

import (
	"context"

	"iis2mdc-go/errcode"
	"iis2mdc-go/gpio"
	"iis2mdc-go/services/drdy/internal/deferral"
	"iis2mdc-go/services/drdy/internal/pinmon"
	"iis2mdc-go/x/logx"
)

// InitInterrupt wires the data-ready pin: resolve the GPIO port, start the
// deferral strategy, configure the pin, install the edge callback and arm it.
// The deferred worker lives until ctx is done or Close is called.
//
// It runs once per sensor; a second call after success returns errcode.Busy.
// On failure nothing is left running and the call may be retried.
func (s *Sensor) InitInterrupt(ctx context.Context, ports gpio.Bindings) (err error) {
	if !s.inited.CompareAndSwap(false, true) {
		return errcode.Busy
	}
	defer func() {
		if err != nil {
			s.inited.Store(false)
		}
	}()

	port, ok := ports.Lookup(s.cfg.Port)
	if !ok {
		logx.Warningf("drdy: cannot get GPIO port %q", s.cfg.Port)
		return &errcode.E{C: errcode.DeviceNotFound, Op: "lookup", Msg: s.cfg.Port}
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	var mon *pinmon.Monitor
	handle := func() { s.handleInterrupt(mon, gen) }

	var d deferral.Deferrer
	switch s.cfg.Strategy {
	case StrategyOwnThread:
		d = deferral.NewOwnThread(handle)
	case StrategyGlobalThread:
		if s.cfg.Queue == nil {
			return &errcode.E{C: errcode.InvalidParams, Op: "strategy", Msg: "global_thread needs a queue"}
		}
		d = deferral.NewGlobal(s.cfg.Queue, handle)
	default:
		return &errcode.E{C: errcode.InvalidParams, Op: "strategy", Msg: s.cfg.Strategy.String()}
	}

	mon = pinmon.New(port, s.cfg.Pin, d.Submit)
	s.mu.Lock()
	s.mon, s.def = mon, d
	s.mu.Unlock()

	wctx, cancel := context.WithCancel(ctx)
	d.Start(wctx)
	defer func() {
		if err != nil {
			cancel()
		}
	}()

	if err := mon.Configure(s.cfg.Flags); err != nil {
		return err
	}
	if err := mon.Install(); err != nil {
		logx.Warningf("drdy: could not set gpio callback: %v", err)
		return err
	}
	if err := mon.Arm(); err != nil {
		_ = mon.Uninstall()
		return errcode.Wrap(errcode.IOError, "arm", err)
	}
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	logx.Infof("drdy: %s pin %d armed, %s", port.Name(), s.cfg.Pin, s.cfg.Strategy)
	return nil
}

// Close removes the edge callback, disarms the pin and stops the worker.
// The registered handler is kept.
func (s *Sensor) Close() error {
	if !s.inited.CompareAndSwap(true, false) {
		return nil
	}
	s.mu.Lock()
	s.gen++
	mon, cancel := s.mon, s.cancel
	s.mu.Unlock()

	err := mon.Uninstall()
	cancel()
	return err
}
