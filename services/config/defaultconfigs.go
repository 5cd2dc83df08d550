package config

import "iis2mdc-go/drivers/iis2mdc"

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: board name passed to Default.
// Val: config before defaults; same shape a YAML file decodes into.
// -----------------------------------------------------------------------------

func intp(n int) *int { return &n }

var embeddedConfigs = map[string]Config{
	// Pico: IIS2MDC on i2c0 (GP4/GP5), DRDY on GP15.
	"pico": {
		Sensor: Sensor{
			Bus:                "i2c0",
			Address:            iis2mdc.Address,
			ODRHz:              50,
			TempCompensation:   true,
			OffsetCancellation: true,
		},
		DRDY: DRDY{Port: "gpio0", Pin: intp(15), Pull: "down", Strategy: "own_thread"},
	},
	// Raspberry Pi: IIS2MDC on /dev/i2c-1, DRDY on GPIO17.
	"rpi": {
		Sensor: Sensor{
			Bus:              "1",
			Address:          iis2mdc.Address,
			ODRHz:            20,
			TempCompensation: true,
		},
		DRDY: DRDY{Port: "gpio0", Pin: intp(17), Strategy: "global_thread", QueueDepth: 4},
	},
}
