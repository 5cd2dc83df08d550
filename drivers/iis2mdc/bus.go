package iis2mdc

// Register access. The device auto-increments the address on multi-byte reads.

func (d *Device) readReg(reg byte) (byte, error) {
	d.w[0] = reg
	if err := d.bus.Tx(d.addr, d.w[:1], d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) readRegs(reg byte, out []byte) error {
	d.w[0] = reg
	return d.bus.Tx(d.addr, d.w[:1], out)
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.bus.Tx(d.addr, d.w[:2], nil)
}

// updateReg does a read-modify-write of the bits in mask.
func (d *Device) updateReg(reg, mask, val byte) error {
	cur, err := d.readReg(reg)
	if err != nil {
		return err
	}
	next := (cur &^ mask) | (val & mask)
	if next == cur {
		return nil
	}
	return d.writeReg(reg, next)
}
