package iis2mdc

import (
	"errors"
	"testing"
)

// regFile emulates the device register space behind drivers.I2C.
type regFile struct {
	addr   uint16
	regs   [256]byte
	writes int
	err    error
}

func newRegFile() *regFile {
	f := &regFile{addr: Address}
	f.regs[regWhoAmI] = whoAmIValue
	return f
}

func (f *regFile) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	if addr != f.addr {
		return errors.New("nak")
	}
	if len(w) == 0 {
		return errors.New("no register address")
	}
	reg := int(w[0])
	for i, b := range w[1:] {
		f.regs[(reg+i)&0xFF] = b
		f.writes++
	}
	for i := range r {
		r[i] = f.regs[(reg+i)&0xFF]
	}
	return nil
}

func TestConfigure(t *testing.T) {
	f := newRegFile()
	d := New(f)
	err := d.Configure(Config{ODR: ODR50Hz, TempCompensation: true, OffsetCancellation: true})
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if got, want := f.regs[regCfgA], byte(cfgACompTemp|byte(ODR50Hz)<<cfgAODRShift); got != want {
		t.Fatalf("CFG_REG_A = %#02x, want %#02x", got, want)
	}
	if got, want := f.regs[regCfgB], byte(cfgBOffCanc); got != want {
		t.Fatalf("CFG_REG_B = %#02x, want %#02x", got, want)
	}
	if f.regs[regCfgC]&cfgCBDU == 0 {
		t.Fatalf("BDU not set: %#02x", f.regs[regCfgC])
	}
}

func TestWhoAmI(t *testing.T) {
	f := newRegFile()
	id, err := New(f).WhoAmI()
	if err != nil || id != whoAmIValue {
		t.Fatalf("WhoAmI = %#02x, %v", id, err)
	}
	f.err = errors.New("bus")
	if _, err := New(f).WhoAmI(); err != f.err {
		t.Fatalf("err = %v", err)
	}
}

func TestConfigureRejectsWrongID(t *testing.T) {
	f := newRegFile()
	f.regs[regWhoAmI] = 0x33
	if err := New(f).Configure(Config{}); err != ErrWhoAmI {
		t.Fatalf("err = %v, want ErrWhoAmI", err)
	}

	f = newRegFile()
	f.addr = 0x1C
	if err := New(f).Configure(Config{Address: 0x1C}); err != nil {
		t.Fatalf("custom address: %v", err)
	}
}

func TestDRDYOnPinSetPreservesOtherBits(t *testing.T) {
	f := newRegFile()
	f.regs[regCfgC] = cfgCBDU
	d := New(f)

	if err := d.DRDYOnPinSet(true); err != nil {
		t.Fatal(err)
	}
	if got := f.regs[regCfgC]; got != cfgCBDU|cfgCDRDYOnPin {
		t.Fatalf("CFG_REG_C = %#02x", got)
	}
	writes := f.writes
	if err := d.DRDYOnPinSet(true); err != nil {
		t.Fatal(err)
	}
	if f.writes != writes {
		t.Fatalf("idempotent enable wrote the register again")
	}
	if err := d.DRDYOnPinSet(false); err != nil {
		t.Fatal(err)
	}
	if got := f.regs[regCfgC]; got != cfgCBDU {
		t.Fatalf("CFG_REG_C = %#02x", got)
	}
}

func TestMagneticRawAndSample(t *testing.T) {
	f := newRegFile()
	copy(f.regs[regOutXL:], []byte{0x10, 0x00, 0xFF, 0xFF, 0x00, 0x80})
	f.regs[regStatus] = statusZYXDA
	d := New(f)

	if err := d.MagneticRaw(make([]byte, 4)); err != ErrShortBuffer {
		t.Fatalf("short buffer: %v", err)
	}
	ok, err := d.DataReady()
	if err != nil || !ok {
		t.Fatalf("DataReady = %v, %v", ok, err)
	}
	s, err := d.ReadSample()
	if err != nil {
		t.Fatal(err)
	}
	if s != (Sample{X: 16, Y: -1, Z: -32768}) {
		t.Fatalf("sample = %+v", s)
	}
}

func TestBusErrorPropagates(t *testing.T) {
	f := newRegFile()
	f.err = errors.New("bus stuck")
	d := New(f)
	if err := d.DRDYOnPinSet(true); err != f.err {
		t.Fatalf("err = %v", err)
	}
	if err := d.MagneticRaw(make([]byte, RawSampleSize)); err != f.err {
		t.Fatalf("err = %v", err)
	}
}

func TestODRFromHz(t *testing.T) {
	for _, c := range []struct {
		hz   int
		want ODR
		ok   bool
	}{
		{0, 0, false}, {1, ODR10Hz, true}, {10, ODR10Hz, true}, {11, ODR20Hz, true},
		{50, ODR50Hz, true}, {100, ODR100Hz, true}, {150, 0, false},
	} {
		got, ok := ODRFromHz(c.hz)
		if got != c.want || ok != c.ok {
			t.Fatalf("ODRFromHz(%d) = %v,%v want %v,%v", c.hz, got, ok, c.want, c.ok)
		}
	}
}
