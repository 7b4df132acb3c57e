package engine

import (
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// ExpenseLine is one operating expense item.
type ExpenseLine struct {
	Key               string      `json:"key"`
	HRDerived         bool        `json:"hrDerived"`
	Amount            [3]float64  `json:"amount"`
	ShareOfOperating  [3]*float64 `json:"shareOfOperating"`
	ShareOfNetRevenue [3]*float64 `json:"shareOfNetRevenue"`
}

// ServiceLine is a per-student expense paired with an income row whose
// student counts it reuses.
type ServiceLine struct {
	Key               string      `json:"key"`
	IncomeKey         string      `json:"incomeKey"`
	UnitCost          float64     `json:"unitCost"`
	Students          [3]float64  `json:"students"`
	Amount            [3]float64  `json:"amount"`
	ShareOfNetRevenue [3]*float64 `json:"shareOfNetRevenue"`
}

// Expenses is the per-year cost projection.
type Expenses struct {
	Operating      []ExpenseLine `json:"operating"`
	Service        []ServiceLine `json:"service"`
	Dormitory      []ServiceLine `json:"dormitory"`
	OperatingTotal [3]float64    `json:"operatingTotal"`
	ServiceTotal   [3]float64    `json:"serviceTotal"`
	DormitoryTotal [3]float64    `json:"dormitoryTotal"`
	Total          [3]float64    `json:"total"`

	TotalShareOfNetRevenue [3]*float64 `json:"totalShareOfNetRevenue"`
}

// ProjectExpenses builds every expense line. HR-derived operating rows read
// only from the salary mapping; other operating rows inflate their Y1 amount.
// Net revenue is the net total income of each year.
func ProjectExpenses(doc scenario.Document, income Income, hr HRCosts, netRevenue [3]float64, f Factors, conv func(float64) float64) Expenses {
	out := Expenses{Operating: make([]ExpenseLine, 0, len(scenario.OperatingKeys))}

	for _, key := range scenario.OperatingKeys {
		line := ExpenseLine{Key: key, HRDerived: scenario.IsHRDerived(key)}
		if line.HRDerived {
			line.Amount = hr.Salaries[key]
		} else {
			amount := conv(mathutil.NonNegative(doc.Expenses.Operating[key]))
			for _, y := range scenario.Years {
				line.Amount[y] = amount * f.Of(y)
			}
		}
		for _, y := range scenario.Years {
			out.OperatingTotal[y] += line.Amount[y]
		}
		out.Operating = append(out.Operating, line)
	}

	out.Service = serviceLines(doc.Expenses.Service, scenario.ServiceExpensePairs, income, f, conv)
	out.Dormitory = serviceLines(doc.Expenses.Dormitory, scenario.DormitoryExpensePairs, income, f, conv)
	for _, y := range scenario.Years {
		for _, line := range out.Service {
			out.ServiceTotal[y] += line.Amount[y]
		}
		for _, line := range out.Dormitory {
			out.DormitoryTotal[y] += line.Amount[y]
		}
		out.Total[y] = out.OperatingTotal[y] + out.ServiceTotal[y] + out.DormitoryTotal[y]
		out.TotalShareOfNetRevenue[y] = mathutil.SafeDiv(out.Total[y], netRevenue[y])
	}

	for i := range out.Operating {
		for _, y := range scenario.Years {
			out.Operating[i].ShareOfOperating[y] = mathutil.SafeDiv(out.Operating[i].Amount[y], out.OperatingTotal[y])
			out.Operating[i].ShareOfNetRevenue[y] = mathutil.SafeDiv(out.Operating[i].Amount[y], netRevenue[y])
		}
	}
	for _, lines := range [][]ServiceLine{out.Service, out.Dormitory} {
		for i := range lines {
			for _, y := range scenario.Years {
				lines[i].ShareOfNetRevenue[y] = mathutil.SafeDiv(lines[i].Amount[y], netRevenue[y])
			}
		}
	}
	return out
}

func serviceLines(rows []scenario.UnitCostRow, pairs []scenario.KeyPair, income Income, f Factors, conv func(float64) float64) []ServiceLine {
	costs := make(map[string]float64, len(rows))
	for _, row := range rows {
		costs[row.Key] = row.UnitCost
	}

	lines := make([]ServiceLine, 0, len(pairs))
	for _, pair := range pairs {
		line := ServiceLine{
			Key:       pair.Expense,
			IncomeKey: pair.Income,
			UnitCost:  conv(mathutil.NonNegative(costs[pair.Expense])),
		}
		fee, _ := income.FeeLine(pair.Income)
		for _, y := range scenario.Years {
			line.Students[y] = fee.Students[y]
			line.Amount[y] = line.Students[y] * line.UnitCost * f.Of(y)
		}
		lines = append(lines, line)
	}
	return lines
}
