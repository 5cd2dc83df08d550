package drdy

import (
	"iis2mdc-go/errcode"
	"iis2mdc-go/gpio"
	"iis2mdc-go/services/workq"
)

// Strategy selects where deferred interrupt handling runs.
type Strategy uint8

const (
	// StrategyOwnThread gives the sensor a dedicated worker goroutine.
	StrategyOwnThread Strategy = iota
	// StrategyGlobalThread runs handling on a shared workq.Queue.
	StrategyGlobalThread
)

func (s Strategy) String() string {
	switch s {
	case StrategyOwnThread:
		return "own_thread"
	case StrategyGlobalThread:
		return "global_thread"
	default:
		return "unknown"
	}
}

// ParseStrategy accepts the String forms; "" means StrategyOwnThread.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "own_thread":
		return StrategyOwnThread, nil
	case "global_thread":
		return StrategyGlobalThread, nil
	default:
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "strategy", Msg: s}
	}
}

// Config describes the data-ready wiring of one sensor.
type Config struct {
	Port     string     // GPIO port name resolved through gpio.Bindings
	Pin      int        // pin number within Port
	Flags    gpio.Flags // electrical flags for the input
	Strategy Strategy
	// Queue is the shared queue used by StrategyGlobalThread. Its owner
	// starts it.
	Queue *workq.Queue
}
