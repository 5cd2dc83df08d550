// Package iis2mdc provides register access for the ST IIS2MDC 3-axis
// magnetometer over I2C.
//
// Only what the data-ready trigger path needs is implemented: identity check,
// basic configuration, the raw output read (which also clears a latched DRDY
// condition) and the DRDY-on-pin routing bit.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when both
// w and r are provided, without releasing the bus.
package iis2mdc

import (
	"errors"

	"tinygo.org/x/drivers"
)

// RawSampleSize is the number of bytes in one OUTX_L..OUTZ_H read.
const RawSampleSize = 6

// Errors returned by the driver.
var (
	ErrWhoAmI      = errors.New("iis2mdc: unexpected WHO_AM_I")
	ErrShortBuffer = errors.New("iis2mdc: buffer shorter than a raw sample")
)

// Config controls device setup. All fields are optional; the zero value
// selects 10 Hz continuous conversion with block data update.
type Config struct {
	// Address defaults to 0x1E if zero.
	Address uint16
	ODR     ODR
	// LowPower trades noise for current.
	LowPower bool
	// TempCompensation enables on-chip temperature compensation.
	TempCompensation bool
	// OffsetCancellation enables the set/reset offset cancellation.
	OffsetCancellation bool
	// LowPassFilter halves the output bandwidth.
	LowPassFilter bool
}

// Device is an IIS2MDC on an I2C bus.
type Device struct {
	bus  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [1]byte
}

// New creates a Device. The bus must already be configured; the device is not
// touched until Configure.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: Address}
}

// Configure checks the device identity and applies cfg. The device is left in
// continuous-conversion mode.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address != 0 {
		d.addr = cfg.Address
	}
	id, err := d.WhoAmI()
	if err != nil {
		return err
	}
	if id != whoAmIValue {
		return ErrWhoAmI
	}

	// BDU keeps high/low output bytes from different conversions apart.
	if err := d.updateReg(regCfgC, cfgCBDU, cfgCBDU); err != nil {
		return err
	}

	var b byte
	if cfg.OffsetCancellation {
		b |= cfgBOffCanc
	}
	if cfg.LowPassFilter {
		b |= cfgBLPF
	}
	if err := d.updateReg(regCfgB, cfgBOffCanc|cfgBLPF, b); err != nil {
		return err
	}

	a := byte(cfg.ODR&0x3)<<cfgAODRShift | modeContinuous
	if cfg.TempCompensation {
		a |= cfgACompTemp
	}
	if cfg.LowPower {
		a |= cfgALowPower
	}
	return d.updateReg(regCfgA, cfgACompTemp|cfgALowPower|cfgAODRMask|cfgAMDMask, a)
}

// WhoAmI returns the identity register.
func (d *Device) WhoAmI() (byte, error) { return d.readReg(regWhoAmI) }

// MagneticRaw reads the six output bytes into buf. Reading the outputs clears
// the data-ready condition on the device.
func (d *Device) MagneticRaw(buf []byte) error {
	if len(buf) < RawSampleSize {
		return ErrShortBuffer
	}
	return d.readRegs(regOutXL, buf[:RawSampleSize])
}

// ReadSample reads and decodes one raw sample.
func (d *Device) ReadSample() (Sample, error) {
	var b [RawSampleSize]byte
	if err := d.MagneticRaw(b[:]); err != nil {
		return Sample{}, err
	}
	return SampleFromRaw(b[:]), nil
}

// DRDYOnPinSet routes (or stops routing) the data-ready signal to the DRDY pin.
func (d *Device) DRDYOnPinSet(enable bool) error {
	var v byte
	if enable {
		v = cfgCDRDYOnPin
	}
	return d.updateReg(regCfgC, cfgCDRDYOnPin, v)
}

// DataReady reports whether a new XYZ sample is available.
func (d *Device) DataReady() (bool, error) {
	st, err := d.readReg(regStatus)
	if err != nil {
		return false, err
	}
	return st&statusZYXDA != 0, nil
}

// Sample holds raw, uncalibrated output counts.
type Sample struct {
	X, Y, Z int16
}

// SampleFromRaw decodes a little-endian OUTX_L..OUTZ_H block.
func SampleFromRaw(b []byte) Sample {
	return Sample{
		X: int16(uint16(b[0]) | uint16(b[1])<<8),
		Y: int16(uint16(b[2]) | uint16(b[3])<<8),
		Z: int16(uint16(b[4]) | uint16(b[5])<<8),
	}
}
