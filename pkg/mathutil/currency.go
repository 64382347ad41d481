// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/inflation-estimator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundHalfUp rounds to the nearest integer with halves going towards
// positive infinity (2.5 -> 3, -2.5 -> -2).
func RoundHalfUp(val float64) int {
	return int(math.Floor(val + 0.5))
}

// Compound grows value by rate for the given (possibly fractional) number
// of periods.
func Compound(value, rate, periods float64) float64 {
	return value * math.Pow(1+rate, periods)
}

// PercentChange returns the change from initial to final as a percentage of
// initial.
func PercentChange(initial, final float64) float64 {
	if initial == 0 {
		return 0
	}
	return (final - initial) / initial * constants.PercentageMultiplier
}

// ToPercent converts a fraction to a percentage.
func ToPercent(fraction float64) float64 {
	return fraction * constants.PercentageMultiplier
}
