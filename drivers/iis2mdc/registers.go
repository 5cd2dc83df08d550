package iis2mdc

// I2C address (7-bit).
const Address = 0x1E

const whoAmIValue = 0x40

// Register map.
const (
	regWhoAmI = 0x4F
	regCfgA   = 0x60
	regCfgB   = 0x61
	regCfgC   = 0x62
	regStatus = 0x67
	regOutXL  = 0x68
)

// CFG_REG_A
const (
	cfgACompTemp = 1 << 7
	cfgALowPower = 1 << 4
	cfgAODRShift = 2
	cfgAODRMask  = 0x3 << cfgAODRShift
	cfgAMDMask   = 0x3
)

// CFG_REG_B
const (
	cfgBOffCanc = 1 << 1
	cfgBLPF     = 1 << 0
)

// CFG_REG_C
const (
	cfgCBDU       = 1 << 4
	cfgCDRDYOnPin = 1 << 0
)

// STATUS_REG
const statusZYXDA = 1 << 3

// MD bits of CFG_REG_A.
const modeContinuous = 0x0

// ODR is the output data rate.
type ODR uint8

const (
	ODR10Hz ODR = iota
	ODR20Hz
	ODR50Hz
	ODR100Hz
)

// ODRFromHz maps a rate in Hz to the slowest supported ODR at or above it.
func ODRFromHz(hz int) (ODR, bool) {
	switch {
	case hz <= 0:
		return 0, false
	case hz <= 10:
		return ODR10Hz, true
	case hz <= 20:
		return ODR20Hz, true
	case hz <= 50:
		return ODR50Hz, true
	case hz <= 100:
		return ODR100Hz, true
	default:
		return 0, false
	}
}
