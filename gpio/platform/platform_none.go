//go:build !linux && !(rp2040 || rp2350)

package platform

import "iis2mdc-go/gpio"

// DefaultBindings has no ports on this platform. Tests should inject fakes.
func DefaultBindings() (gpio.Bindings, error) { return &gpio.Registry{}, nil }
