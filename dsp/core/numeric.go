package core

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp limits value to the inclusive range [lo, hi]. NaN maps to lo.
func Clamp[F constraints.Float](value, lo, hi F) F {
	if lo > hi {
		lo, hi = hi, lo
	}
	if !(value >= lo) {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// DBToLinear converts decibels to a linear amplitude ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude ratio to decibels.
// Non-positive input returns -Inf.
func LinearToDB(linear float64) float64 {
	if linear <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(linear)
}

// PowerToDB converts a mean-square power to decibels.
// Non-positive input returns -Inf.
func PowerToDB(power float64) float64 {
	if power <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(power)
}
