package drdy

import (
	"iis2mdc-go/errcode"
	"iis2mdc-go/types"
	"iis2mdc-go/x/logx"
)

// SetTrigger registers h for trig, replacing any previous handler. A nil h
// clears the registration and stops the device asserting data-ready.
//
// Only types.ChanMagnXYZ is supported. Register errors are returned as-is.
func (s *Sensor) SetTrigger(trig types.Trigger, h Handler) error {
	if trig.Chan != types.ChanMagnXYZ {
		return errcode.Unsupported
	}
	if h == nil {
		s.handler.Store(nil)
		return s.regs.DRDYOnPinSet(false)
	}
	s.handler.Store(&h)

	// A sample latched before registration would hold DRDY asserted and no
	// new edge would ever come; reading it re-triggers the lost interrupt.
	var raw [rawSampleSize]byte
	if err := s.regs.MagneticRaw(raw[:]); err != nil && logx.V(1) {
		logx.Infof("drdy: pre-arm sample read failed: %v", err)
	}
	return s.regs.DRDYOnPinSet(true)
}
