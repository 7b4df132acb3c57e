// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/school-forecast/pkg/constants"
)

// Finite returns val, or 0 when val is NaN or infinite.
func Finite(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return 0
	}
	return val
}

// NonNegative returns the finite value of val floored at 0.
func NonNegative(val float64) float64 {
	val = Finite(val)
	if val < 0 {
		return 0
	}
	return val
}

// Clamp01 bounds val to [0,1]. Non-finite values become 0.
func Clamp01(val float64) float64 {
	val = Finite(val)
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

// SafeDiv returns num/den, or nil when den is zero or either side is not finite.
// A nil result means "not applicable" and must not be used arithmetically.
func SafeDiv(num, den float64) *float64 {
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) || math.IsNaN(num) || math.IsInf(num, 0) {
		return nil
	}
	v := num / den
	return &v
}

// DivOrZero is SafeDiv collapsed to 0 for use inside sums.
func DivOrZero(num, den float64) float64 {
	if v := SafeDiv(num, den); v != nil {
		return *v
	}
	return 0
}

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Sum adds the finite parts of vals.
func Sum(vals ...float64) float64 {
	total := 0.0
	for _, v := range vals {
		total += Finite(v)
	}
	return total
}

// Ptr returns a pointer to a copy of val.
func Ptr(val float64) *float64 {
	return &val
}
