package utils

import "math"

// Round2 rounds money and liter totals to two decimals.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
