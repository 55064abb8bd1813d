package components

import "strings"

const maxCachedPad = 256

var spaces = strings.Repeat(" ", maxCachedPad)

// Pad returns n spaces. Widths up to 256 are sliced from a shared string.
func Pad(n int) string {
	switch {
	case n <= 0:
		return ""
	case n <= maxCachedPad:
		return spaces[:n]
	default:
		return strings.Repeat(" ", n)
	}
}
