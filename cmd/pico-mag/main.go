//go:build rp2040 || rp2350

// Command pico-mag prints IIS2MDC samples on a Raspberry Pi Pico, one per
// data-ready edge, using the embedded "pico" config.
package main

import (
	"context"
	"machine"
	"time"

	"iis2mdc-go/drivers/iis2mdc"
	"iis2mdc-go/gpio/platform"
	"iis2mdc-go/services/config"
	"iis2mdc-go/services/drdy"
	"iis2mdc-go/services/workq"
	"iis2mdc-go/types"
	"iis2mdc-go/x/logx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[main] boot")

	cfg, err := config.Default("pico")
	if err != nil {
		halt("config", err)
	}

	bus := machine.I2C0
	sda, scl := machine.I2C0_SDA_PIN, machine.I2C0_SCL_PIN
	if cfg.Sensor.Bus == "i2c1" {
		bus = machine.I2C1
		sda, scl = machine.I2C1_SDA_PIN, machine.I2C1_SCL_PIN
	}
	if err := bus.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz, SDA: sda, SCL: scl}); err != nil {
		halt("i2c", err)
	}

	dev := iis2mdc.New(bus)
	if err := dev.Configure(cfg.Driver()); err != nil {
		halt("iis2mdc", err)
	}

	ports, _ := platform.DefaultBindings()
	ctx := context.Background()

	tcfg := cfg.Trigger()
	if tcfg.Strategy == drdy.StrategyGlobalThread {
		q := workq.New(cfg.DRDY.QueueDepth)
		q.Start(ctx)
		tcfg.Queue = q
	}
	s := drdy.New(dev, tcfg)
	if err := s.InitInterrupt(ctx, ports); err != nil {
		halt("drdy", err)
	}

	samples := make(chan iis2mdc.Sample, 4)
	if err := s.SetTrigger(types.DataReady, func(types.Trigger) {
		smp, err := dev.ReadSample()
		if err != nil {
			return
		}
		select {
		case samples <- smp:
		default:
		}
	}); err != nil {
		halt("trigger", err)
	}

	tick := time.NewTicker(5 * time.Second)
	defer tick.Stop()
	for {
		select {
		case smp := <-samples:
			println("[mag]", smp.X, smp.Y, smp.Z)
		case <-tick.C:
			st := s.Stats()
			println("[drdy] edges:", st.Edges, "calls:", st.Invocations, "rearm_faults:", st.RearmFaults)
			if err := s.Err(); err != nil {
				logx.Errorf("[drdy] stalled: %v", err)
			}
		}
	}
}

func halt(stage string, err error) {
	for {
		logx.Errorf("[main] init failed: %s: %v", stage, err)
		time.Sleep(5 * time.Second)
	}
}
