package engine

import (
	"math"

	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// DiscountLine is the per-year effect of one discount definition.
type DiscountLine struct {
	Name         string     `json:"name"`
	Mode         string     `json:"mode"`
	Ratio        [3]float64 `json:"ratio"`
	Value        [3]float64 `json:"value"`
	Contribution [3]float64 `json:"contribution"`
	Amount       [3]float64 `json:"amount"`
}

// Discounts aggregates every definition into the capped discount rate and
// the net income figures.
type Discounts struct {
	Lines             []DiscountLine `json:"lines"`
	CombinedRate      [3]float64     `json:"combinedRate"`
	CappedRate        [3]float64     `json:"cappedRate"`
	Total             [3]float64     `json:"total"`
	NetActivityIncome [3]float64     `json:"netActivityIncome"`
	NetTotalIncome    [3]float64     `json:"netTotalIncome"`
}

// ApplyDiscounts resolves every definition against the income projection.
//
// The combined rate is capped to [0,1] and the total discount is
// min(gross, gross*cappedRate), floored at 0 so a discount never adds income.
func ApplyDiscounts(defs []scenario.Discount, income Income, f Factors, conv func(float64) float64) Discounts {
	out := Discounts{Lines: make([]DiscountLine, 0, len(defs))}

	for _, def := range defs {
		line := DiscountLine{Name: def.Name, Mode: def.Mode}
		for _, y := range scenario.Years {
			students := income.TuitionStudents[y]
			line.Ratio[y] = ResolveRatio(def, y, students)

			if def.Mode == scenario.ModeFixed {
				line.Value[y] = FixedValue(def, y, f, conv)
				if avg := income.AvgTuitionFee[y]; avg != nil && *avg != 0 {
					line.Contribution[y] = line.Ratio[y] * line.Value[y] / *avg
				}
				line.Amount[y] = students * line.Ratio[y] * line.Value[y]
			} else {
				line.Value[y] = PercentValue(def, y)
				line.Contribution[y] = line.Ratio[y] * line.Value[y]
				line.Amount[y] = income.TuitionTotal[y] * line.Contribution[y]
			}
			out.CombinedRate[y] += line.Contribution[y]
		}
		out.Lines = append(out.Lines, line)
	}

	for _, y := range scenario.Years {
		gross := income.TuitionTotal[y]
		out.CappedRate[y] = mathutil.Clamp01(out.CombinedRate[y])
		out.Total[y] = math.Max(0, math.Min(gross, gross*out.CappedRate[y]))
		out.NetActivityIncome[y] = income.ActivityGross[y] - out.Total[y]
		out.NetTotalIncome[y] = income.ActivityGross[y] + income.OtherIncomeTotal[y] - out.Total[y]
	}
	return out
}

// ResolveRatio returns the effective share of tuition students covered by a
// definition in year y. A nonzero student count for the year overrides the
// stored ratio; years are resolved independently of each other.
func ResolveRatio(def scenario.Discount, y scenario.Year, tuitionStudents float64) float64 {
	if count := mathutil.NonNegative(def.CountFor(y)); count > 0 {
		return mathutil.Clamp01(mathutil.DivOrZero(math.Round(count), tuitionStudents))
	}
	return mathutil.Clamp01(def.RatioFor(y))
}

// PercentValue returns the discount rate of a percent definition in year y:
// the year's own value when one was entered, otherwise the Y1 value. Rates
// are clamped to [0,1] and never inflated.
func PercentValue(def scenario.Discount, y scenario.Year) float64 {
	if v, ok := def.ExplicitValue(y); ok {
		return mathutil.Clamp01(v)
	}
	return mathutil.Clamp01(def.Value)
}

// FixedValue returns the per-student amount of a fixed discount in year y: an
// explicitly entered year value verbatim, otherwise the Y1 value inflated.
func FixedValue(def scenario.Discount, y scenario.Year, f Factors, conv func(float64) float64) float64 {
	if v, ok := def.ExplicitValue(y); ok {
		return conv(mathutil.NonNegative(v))
	}
	return conv(mathutil.NonNegative(def.Value)) * f.Of(y)
}
