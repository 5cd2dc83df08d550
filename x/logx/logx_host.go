//go:build !(rp2040 || rp2350)

// Package logx is the levelled logger used across the module. Host builds
// log through glog; MCU builds print to the console with println.
package logx

import (
	"fmt"

	"github.com/golang/glog"
)

func Infof(format string, a ...any)    { glog.InfoDepth(1, fmt.Sprintf(format, a...)) }
func Warningf(format string, a ...any) { glog.WarningDepth(1, fmt.Sprintf(format, a...)) }
func Errorf(format string, a ...any)   { glog.ErrorDepth(1, fmt.Sprintf(format, a...)) }

// V reports whether verbose logging at level is enabled (glog -v flag).
func V(level int) bool { return bool(glog.V(glog.Level(level))) }

// Flush writes any buffered log lines.
func Flush() { glog.Flush() }
