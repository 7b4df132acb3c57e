package scenario

import "github.com/iwvelando/school-forecast/internal/kademe"

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	out.Kademe = d.Kademe.Clone()
	out.Grades = Grades{
		Current: copyRows(d.Grades.Current),
		Planning: PlanningGrades{
			Y1: copyRows(d.Grades.Planning.Y1),
			Y2: copyRows(d.Grades.Planning.Y2),
			Y3: copyRows(d.Grades.Planning.Y3),
		},
	}
	out.Income = Income{
		Tuition:              append([]TuitionRow{}, d.Income.Tuition...),
		NonTuition:           append([]FeeRow{}, d.Income.NonTuition...),
		Dormitory:            append([]FeeRow{}, d.Income.Dormitory...),
		OtherInstitution:     append([]AmountRow{}, d.Income.OtherInstitution...),
		GovernmentIncentives: d.Income.GovernmentIncentives,
	}
	out.Discounts = make([]Discount, len(d.Discounts))
	for i, disc := range d.Discounts {
		out.Discounts[i] = disc.clone()
	}
	out.HR = HR{
		UnitCostRatio: d.HR.UnitCostRatio,
		Years: HRYears{
			Y1: d.HR.Years.Y1.Clone(),
			Y2: d.HR.Years.Y2.Clone(),
			Y3: d.HR.Years.Y3.Clone(),
		},
	}
	out.Expenses = Expenses{
		Operating: make(map[string]float64, len(d.Expenses.Operating)),
		Service:   append([]UnitCostRow{}, d.Expenses.Service...),
		Dormitory: append([]UnitCostRow{}, d.Expenses.Dormitory...),
	}
	for k, v := range d.Expenses.Operating {
		out.Expenses.Operating[k] = v
	}
	out.Capacity = make(map[kademe.Band]CapacityRow, len(d.Capacity))
	for k, v := range d.Capacity {
		out.Capacity[k] = v
	}
	return out
}

func (d Discount) clone() Discount {
	out := d
	if d.ValueY2 != nil {
		v := *d.ValueY2
		out.ValueY2 = &v
	}
	if d.ValueY3 != nil {
		v := *d.ValueY3
		out.ValueY3 = &v
	}
	return out
}

// Clone returns a deep copy of the year data.
func (y IKYearData) Clone() IKYearData {
	out := IKYearData{
		UnitCosts:         make(map[string]float64, len(y.UnitCosts)),
		HeadcountsByLevel: make(map[kademe.Band]map[string]float64, len(y.HeadcountsByLevel)),
	}
	for k, v := range y.UnitCosts {
		out.UnitCosts[k] = v
	}
	for band, counts := range y.HeadcountsByLevel {
		c := make(map[string]float64, len(counts))
		for k, v := range counts {
			c[k] = v
		}
		out.HeadcountsByLevel[band] = c
	}
	return out
}
