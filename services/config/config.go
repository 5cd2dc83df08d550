// Package config holds the magnetometer and data-ready wiring.
//
// Boards carry a compiled-in default (see defaultconfigs.go). Hosts usually
// load a YAML file and pass its bytes to Parse; Parse is not built for MCU
// targets, which keeps the YAML decoder and its reflection out of firmware.
package config

import (
	"iis2mdc-go/drivers/iis2mdc"
	"iis2mdc-go/errcode"
	"iis2mdc-go/gpio"
	"iis2mdc-go/services/drdy"
)

// EmbeddedConfigLookup allows overriding how board configs are resolved.
var EmbeddedConfigLookup = func(board string) (Config, bool) {
	c, ok := embeddedConfigs[board]
	return c, ok
}

type Config struct {
	Sensor Sensor `yaml:"sensor"`
	DRDY   DRDY   `yaml:"drdy"`
}

type Sensor struct {
	Bus                string `yaml:"bus"` // e.g. "i2c0" on MCU, "/dev/i2c-1" or "1" on Linux
	Address            uint16 `yaml:"address"`
	ODRHz              int    `yaml:"odr_hz"`
	TempCompensation   bool   `yaml:"temp_compensation"`
	OffsetCancellation bool   `yaml:"offset_cancellation"`
	LowPassFilter      bool   `yaml:"low_pass_filter"`
	LowPower           bool   `yaml:"low_power"`
}

type DRDY struct {
	Port       string `yaml:"port"`
	Pin        *int   `yaml:"pin"`
	ActiveLow  bool   `yaml:"active_low"`
	Pull       string `yaml:"pull"` // "none", "up", "down"
	Strategy   string `yaml:"strategy"`
	QueueDepth int    `yaml:"queue_depth"`
}

// Default returns the embedded config for board with defaults applied.
func Default(board string) (Config, error) {
	c, ok := EmbeddedConfigLookup(board)
	if !ok {
		return Config{}, &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: "no embedded config for board: " + board}
	}
	return c.finish()
}

func (c Config) finish() (Config, error) {
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Sensor.Address == 0 {
		c.Sensor.Address = iis2mdc.Address
	}
	if c.Sensor.ODRHz == 0 {
		c.Sensor.ODRHz = 10
	}
	if c.DRDY.Pull == "" {
		c.DRDY.Pull = "none"
	}
	if c.DRDY.QueueDepth <= 0 {
		c.DRDY.QueueDepth = 8
	}
}

// Validate checks fields that would otherwise fail late, at bring-up.
func (c Config) Validate() error {
	bad := func(msg string) error {
		return &errcode.E{C: errcode.InvalidParams, Op: "config", Msg: msg}
	}
	if c.Sensor.Bus == "" {
		return bad("sensor.bus is required")
	}
	if _, ok := iis2mdc.ODRFromHz(c.Sensor.ODRHz); !ok {
		return bad("sensor.odr_hz out of range")
	}
	if c.DRDY.Port == "" {
		return bad("drdy.port is required")
	}
	if c.DRDY.Pin == nil || *c.DRDY.Pin < 0 || *c.DRDY.Pin > 31 {
		return bad("drdy.pin must be 0..31")
	}
	switch c.DRDY.Pull {
	case "none", "up", "down":
	default:
		return bad("drdy.pull must be none, up or down")
	}
	if _, err := drdy.ParseStrategy(c.DRDY.Strategy); err != nil {
		return err
	}
	return nil
}

// Driver returns the register driver configuration.
func (c Config) Driver() iis2mdc.Config {
	odr, _ := iis2mdc.ODRFromHz(c.Sensor.ODRHz)
	return iis2mdc.Config{
		Address:            c.Sensor.Address,
		ODR:                odr,
		LowPower:           c.Sensor.LowPower,
		TempCompensation:   c.Sensor.TempCompensation,
		OffsetCancellation: c.Sensor.OffsetCancellation,
		LowPassFilter:      c.Sensor.LowPassFilter,
	}
}

// Trigger returns the data-ready wiring. Queue is left nil; callers using
// the global strategy attach their shared queue.
func (c Config) Trigger() drdy.Config {
	var flags gpio.Flags
	if c.DRDY.ActiveLow {
		flags |= gpio.FlagActiveLow
	}
	switch c.DRDY.Pull {
	case "up":
		flags |= gpio.FlagPullUp
	case "down":
		flags |= gpio.FlagPullDown
	}
	st, _ := drdy.ParseStrategy(c.DRDY.Strategy)
	pin := 0
	if c.DRDY.Pin != nil {
		pin = *c.DRDY.Pin
	}
	return drdy.Config{Port: c.DRDY.Port, Pin: pin, Flags: flags, Strategy: st}
}
