//go:build linux && !(rp2040 || rp2350)

// Command magmon streams IIS2MDC samples on Linux, one per data-ready edge.
//
//	magmon -config mag.yaml -logtostderr
//	magmon -board rpi -v 1 -logtostderr
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"

	"iis2mdc-go/drivers/iis2mdc"
	"iis2mdc-go/gpio/platform"
	"iis2mdc-go/services/config"
	"iis2mdc-go/services/drdy"
	"iis2mdc-go/services/workq"
	"iis2mdc-go/types"
	"iis2mdc-go/x/logx"
)

var (
	configPath = flag.String("config", "", "YAML config file (overrides -board)")
	board      = flag.String("board", "rpi", "embedded config to use when -config is empty")
	statsEvery = flag.Duration("stats", 10*time.Second, "trigger stats interval (0 disables)")
)

func main() {
	flag.Parse()
	defer logx.Flush()
	if err := run(); err != nil {
		logx.Errorf("magmon: %v", err)
		logx.Flush()
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if *configPath == "" {
		return config.Default(*board)
	}
	raw, err := os.ReadFile(*configPath)
	if err != nil {
		return config.Config{}, err
	}
	return config.Parse(raw)
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialises periph.io host drivers; must precede i2creg.Open.
	ports, err := platform.DefaultBindings()
	if err != nil {
		return err
	}
	bus, err := i2creg.Open(cfg.Sensor.Bus)
	if err != nil {
		return err
	}
	defer bus.Close()

	dev := iis2mdc.New(bus)
	if err := dev.Configure(cfg.Driver()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tcfg := cfg.Trigger()
	if tcfg.Strategy == drdy.StrategyGlobalThread {
		q := workq.New(cfg.DRDY.QueueDepth)
		q.Start(ctx)
		tcfg.Queue = q
	}
	s := drdy.New(dev, tcfg)
	if err := s.InitInterrupt(ctx, ports); err != nil {
		return err
	}
	defer s.Close()

	samples := make(chan iis2mdc.Sample, 8)
	err = s.SetTrigger(types.DataReady, func(types.Trigger) {
		smp, err := dev.ReadSample()
		if err != nil {
			logx.Warningf("magmon: sample read: %v", err)
			return
		}
		select {
		case samples <- smp:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer s.SetTrigger(types.DataReady, nil)

	var tick <-chan time.Time
	if *statsEvery > 0 {
		t := time.NewTicker(*statsEvery)
		defer t.Stop()
		tick = t.C
	}
	for {
		select {
		case <-ctx.Done():
			logx.Infof("magmon: stopping")
			return nil
		case smp := <-samples:
			logx.Infof("mag x=%d y=%d z=%d", smp.X, smp.Y, smp.Z)
		case <-tick:
			st := s.Stats()
			logx.Infof("drdy: edges=%d dispatches=%d calls=%d rearm_faults=%d panics=%d",
				st.Edges, st.Dispatches, st.Invocations, st.RearmFaults, st.HandlerPanics)
			if err := s.Err(); err != nil {
				return err
			}
		}
	}
}
