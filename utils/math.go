package utils

import "math"

// RoundFloat rounds to precision decimal places, half away from zero.
// Monetary amounts pass through here before persisting so stored totals
// stay at two decimals.
func RoundFloat(value float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.Round(value*scale) / scale
}
