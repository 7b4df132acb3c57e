package engine

import (
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// Factors holds the cumulative inflation factor of Y1, Y2 and Y3.
type Factors [3]float64

// InflationFactors compounds the annual rates: Y1 is always 1, Y2 is 1+rateY2
// and Y3 is (1+rateY2)(1+rateY3). Rates are not clamped; a rate at or below
// -100% yields a non-positive factor and the amounts derived from it are used
// as they are. Non-finite rates read as 0.
func InflationFactors(rateY2, rateY3 float64) Factors {
	y2 := 1 + mathutil.Finite(rateY2)
	return Factors{1, y2, y2 * (1 + mathutil.Finite(rateY3))}
}

// Of returns the factor of year y.
func (f Factors) Of(y scenario.Year) float64 {
	return f[y]
}
