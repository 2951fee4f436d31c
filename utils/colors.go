package utils

// ANSI escape sequences used for terminal output.
const (
	DefaultColor = "\x1b[39m"
	SuccessColor = "\x1b[92m"
	ErrorColor   = "\x1b[31m"
)

// Colorize wraps s in color when enabled is true.
func Colorize(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return color + s + DefaultColor
}
