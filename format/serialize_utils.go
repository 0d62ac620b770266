package format

import (
	"strconv"
)

// Float renders n in the shortest decimal form that round-trips.
func Float(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Fixed renders n with exactly prec digits after the decimal point.
func Fixed(n float64, prec int) string {
	return strconv.FormatFloat(n, 'f', prec, 64)
}
