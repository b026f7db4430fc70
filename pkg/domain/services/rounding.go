package services

import "math"

// Round4 rounds a quantity to 4 fractional digits, half away from zero.
// Every stored or compared quantity in the planning core goes through this
// function so that recorded values reproduce exactly.
func Round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

// Round2 rounds a percentage to 2 fractional digits, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*1e2) / 1e2
}
