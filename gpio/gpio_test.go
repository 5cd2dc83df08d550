package gpio_test

import (
	"testing"

	"iis2mdc-go/gpio"
	"iis2mdc-go/gpio/gpiofake"
)

func TestRegistryLookup(t *testing.T) {
	var r gpio.Registry
	p := gpiofake.New("gpio0", 8)
	r.Register(p)

	got, ok := r.Lookup("gpio0")
	if !ok || got != p {
		t.Fatalf("Lookup(gpio0) = %v, %v", got, ok)
	}
	if _, ok := r.Lookup("gpio1"); ok {
		t.Fatal("Lookup(gpio1) should miss")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register should panic")
		}
	}()
	r.Register(gpiofake.New("gpio0", 1))
}

func TestCallbackMaskAndEdges(t *testing.T) {
	p := gpiofake.New("gpio0", 8)
	if err := p.ConfigureInput(3, gpio.FlagActiveLow); err != nil {
		t.Fatalf("ConfigureInput: %v", err)
	}
	// idle level for active-low is high
	p.Set(3, true)

	var hits3, hits5 int
	cb3 := gpio.NewCallback(func(_ gpio.Port, pins uint32) {
		if pins != gpio.Bit(3) {
			t.Errorf("pins = %#x", pins)
		}
		hits3++
	}, gpio.Bit(3))
	cb5 := gpio.NewCallback(func(gpio.Port, uint32) { hits5++ }, gpio.Bit(5))
	if err := p.AddCallback(cb3); err != nil {
		t.Fatal(err)
	}
	if err := p.AddCallback(cb5); err != nil {
		t.Fatal(err)
	}
	if err := p.AddCallback(cb3); err != nil {
		t.Fatal(err)
	}
	if p.Callbacks() != 2 {
		t.Fatalf("callbacks = %d, want 2", p.Callbacks())
	}

	// disabled: no delivery
	p.Pulse(3)
	if hits3 != 0 {
		t.Fatalf("delivery while disabled")
	}

	if err := p.InterruptConfigure(3, gpio.IntEdgeToActive); err != nil {
		t.Fatal(err)
	}
	p.Pulse(3)
	p.Pulse(3)
	if hits3 != 2 || hits5 != 0 {
		t.Fatalf("hits3=%d hits5=%d, want 2/0", hits3, hits5)
	}

	if err := p.RemoveCallback(cb3); err != nil {
		t.Fatal(err)
	}
	if err := p.RemoveCallback(cb3); err != gpio.ErrUnknownCallback {
		t.Fatalf("second remove: %v", err)
	}
	p.Pulse(3)
	if hits3 != 2 {
		t.Fatalf("delivery after remove")
	}
}

func TestNilCallbackRejected(t *testing.T) {
	p := gpiofake.New("gpio0", 1)
	if err := p.AddCallback(nil); err != gpio.ErrNilCallback {
		t.Fatalf("err = %v", err)
	}
	if err := p.ConfigureInput(4, 0); err != gpio.ErrInvalidPin {
		t.Fatalf("err = %v", err)
	}
}
