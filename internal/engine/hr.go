package engine

import (
	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// RoleCost is the projected cost of one staffing role.
type RoleCost struct {
	Key        string     `json:"key"`
	Category   string     `json:"category"`
	LocalStaff bool       `json:"localStaff"`
	Headcount  [3]float64 `json:"headcount"`
	UnitCost   [3]float64 `json:"unitCost"`
	AnnualCost [3]float64 `json:"annualCost"`
}

// HRCosts is the staffing projection and its salary expense mapping.
type HRCosts struct {
	Roles     []RoleCost            `json:"roles"`
	Salaries  map[string][3]float64 `json:"salaries"`
	Headcount [3]float64            `json:"headcount"`
	Total     [3]float64            `json:"total"`
}

// AllocateHR computes annualCost(role, y) = unitCost(role, y) * headcount
// summed over bands. Y1 unit costs grow by the unit cost ratio: Y2 = Y1*R and
// Y3 = Y2*R. With the inflation growth rule, local staff roles grow by the
// inflation factors instead and every other role keeps the ratio.
func AllocateHR(hr scenario.HR, f Factors, growth string, conv func(float64) float64) HRCosts {
	ratio := mathutil.Finite(hr.UnitCostRatio)
	if ratio <= 0 {
		ratio = constants.DefaultUnitCostRatio
	}

	out := HRCosts{
		Roles:    make([]RoleCost, 0, len(scenario.Roles)),
		Salaries: make(map[string][3]float64, len(scenario.SalaryCategories)),
	}
	for _, category := range scenario.SalaryCategories {
		out.Salaries[category] = [3]float64{}
	}

	for _, role := range scenario.Roles {
		rc := RoleCost{Key: role.Key, Category: role.Category, LocalStaff: role.LocalStaff}
		base := conv(mathutil.NonNegative(hr.Years.Y1.UnitCosts[role.Key]))
		rc.UnitCost = [3]float64{base, base * ratio, base * ratio * ratio}
		if role.LocalStaff && growth == constants.GrowthInflation {
			rc.UnitCost = [3]float64{base, base * f.Of(scenario.Y2), base * f.Of(scenario.Y3)}
		}

		salaries := out.Salaries[role.Category]
		for _, y := range scenario.Years {
			rc.Headcount[y] = headcount(hr.Years.Year(y), role.Key)
			rc.AnnualCost[y] = rc.UnitCost[y] * rc.Headcount[y]
			salaries[y] += rc.AnnualCost[y]
			out.Headcount[y] += rc.Headcount[y]
			out.Total[y] += rc.AnnualCost[y]
		}
		out.Salaries[role.Category] = salaries
		out.Roles = append(out.Roles, rc)
	}
	return out
}

// SalaryMapping returns the five HR-derived expense amounts of year y.
func (h HRCosts) SalaryMapping(y scenario.Year) map[string]float64 {
	out := make(map[string]float64, len(h.Salaries))
	for category, values := range h.Salaries {
		out[category] = values[y]
	}
	return out
}

func headcount(data scenario.IKYearData, role string) float64 {
	total := 0.0
	for _, band := range kademe.Bands {
		total += mathutil.NonNegative(data.HeadcountsByLevel[band][role])
	}
	return total
}
