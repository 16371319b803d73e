package errors

import (
	"fmt"
	"math"
)

// SafeDivide performs division with protection against division by zero.
// Returns 0 if denominator is zero or close to zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}

// CheckFinite returns a ValueError if any value is NaN or Inf.
func CheckFinite(op string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValueError(op, fmt.Sprintf("non-finite value %v at position %d", v, i))
		}
	}
	return nil
}
