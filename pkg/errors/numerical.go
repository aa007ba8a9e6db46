package errors

import (
	"math"
)

// CheckFinite checks a column's values for ±Inf and returns a DataQualityError
// naming the column if any are found. NaN is treated as missing and is left to
// the caller's missing-value check.
func CheckFinite(op, column string, values []float64) error {
	for _, v := range values {
		if math.IsInf(v, 0) {
			return NewDataQualityError(op, "infinite values found", []string{column}, ErrInfiniteValues)
		}
	}
	return nil
}

// CountOutside returns how many values fall strictly below lo and strictly above hi.
func CountOutside(values []float64, lo, hi float64) (below, above int) {
	for _, v := range values {
		switch {
		case v < lo:
			below++
		case v > hi:
			above++
		}
	}
	return below, above
}
