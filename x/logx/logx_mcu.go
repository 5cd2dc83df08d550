//go:build rp2040 || rp2350

// Package logx is the levelled logger used across the module. Host builds
// log through glog; MCU builds print to the console with println.
package logx

// Verbosity gates V. Set from the board bootstrap.
var Verbosity = 0

func Infof(format string, a ...any)    { emit("I ", format, a) }
func Warningf(format string, a ...any) { emit("W ", format, a) }
func Errorf(format string, a ...any)   { emit("E ", format, a) }

func V(level int) bool { return level <= Verbosity }

func Flush() {}

// emit substitutes each %-verb with the next argument, printed with the
// builtin print. Width and precision are not supported; no fmt on MCU.
func emit(tag, format string, a []any) {
	print(tag)
	start := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			continue
		}
		print(format[start:i])
		i++
		if format[i] == '%' {
			print("%")
		} else if len(a) > 0 {
			printArg(a[0])
			a = a[1:]
		}
		start = i + 1
	}
	print(format[start:])
	println()
}

func printArg(v any) {
	switch x := v.(type) {
	case string:
		print(x)
	case int:
		print(x)
	case int16:
		print(x)
	case int32:
		print(x)
	case uint8:
		print(x)
	case uint16:
		print(x)
	case uint32:
		print(x)
	case bool:
		print(x)
	case error:
		print(x.Error())
	case interface{ String() string }:
		print(x.String())
	default:
		print("?")
	}
}
