package utils

import "math"

// RoundHalfUp rounds to the nearest integer, with halves rounded towards
// positive infinity (2.5 -> 3, -2.5 -> -2).
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ClampMin returns v, or min when v is smaller.
func ClampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}

// FloorInt returns floor(v) as an int.
func FloorInt(v float64) int {
	return int(math.Floor(v))
}
