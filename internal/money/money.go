// Package money normalizes monetary values to cent precision.
//
// Every mutation that stores an amount must pass it through Round2 first so
// that accumulated floating-point drift never reaches the ledger.
package money

import "math"

// Round2 rounds v to the nearest cent, half away from zero.
// It is idempotent: Round2(Round2(v)) == Round2(v).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Equal reports whether two monetary values agree at cent precision.
func Equal(a, b float64) bool {
	return math.Abs(Round2(a)-Round2(b)) < 0.005
}
