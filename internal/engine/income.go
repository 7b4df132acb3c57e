package engine

import (
	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// TuitionLine is one tuition row. Students are taken from the cohort of the
// row's base band; inactive rows (other program type or disabled band) carry
// zero students and amounts.
type TuitionLine struct {
	Key      string      `json:"key"`
	Band     kademe.Band `json:"band"`
	Active   bool        `json:"active"`
	UnitFee  float64     `json:"unitFee"`
	Students [3]float64  `json:"students"`
	Amount   [3]float64  `json:"amount"`
}

// FeeLine is a non-tuition or dormitory income row.
type FeeLine struct {
	Key      string     `json:"key"`
	UnitFee  float64    `json:"unitFee"`
	Students [3]float64 `json:"students"`
	Amount   [3]float64 `json:"amount"`
}

// AmountLine is an inflated flat amount.
type AmountLine struct {
	Key    string     `json:"key"`
	Amount [3]float64 `json:"amount"`
}

// Income is the per-year revenue projection.
type Income struct {
	Tuition              []TuitionLine `json:"tuition"`
	NonTuition           []FeeLine     `json:"nonTuition"`
	Dormitory            []FeeLine     `json:"dormitory"`
	OtherInstitution     []AmountLine  `json:"otherInstitution"`
	GovernmentIncentives [3]float64    `json:"governmentIncentives"`

	TuitionStudents  [3]float64  `json:"tuitionStudents"`
	TuitionTotal     [3]float64  `json:"tuitionTotal"`
	NonTuitionTotal  [3]float64  `json:"nonTuitionTotal"`
	DormitoryTotal   [3]float64  `json:"dormitoryTotal"`
	ActivityGross    [3]float64  `json:"activityGross"`
	OtherIncomeTotal [3]float64  `json:"otherIncomeTotal"`
	AvgTuitionFee    [3]*float64 `json:"avgTuitionFee"`
}

// ProjectIncome computes every income line. Monetary inputs are converted
// with conv before inflation is applied.
func ProjectIncome(doc scenario.Document, cohort Cohort, f Factors, conv func(float64) float64) Income {
	income := Income{
		Tuition:          make([]TuitionLine, 0, len(doc.Income.Tuition)),
		NonTuition:       feeLines(doc.Income.NonTuition, f, conv),
		Dormitory:        feeLines(doc.Income.Dormitory, f, conv),
		OtherInstitution: make([]AmountLine, 0, len(doc.Income.OtherInstitution)),
	}

	for _, row := range doc.Income.Tuition {
		band, program, ok := scenario.ParseTuitionKey(row.Key)
		line := TuitionLine{
			Key:     row.Key,
			Band:    band,
			Active:  ok && program == doc.ProgramType && doc.Kademe[band].Enabled,
			UnitFee: conv(row.UnitFee),
		}
		if line.Active {
			for _, y := range scenario.Years {
				line.Students[y] = cohort.Year(y).Students[band]
				line.Amount[y] = line.Students[y] * line.UnitFee * f.Of(y)
				income.TuitionStudents[y] += line.Students[y]
				income.TuitionTotal[y] += line.Amount[y]
			}
		}
		income.Tuition = append(income.Tuition, line)
	}

	for _, y := range scenario.Years {
		if income.TuitionStudents[y] == 0 {
			income.TuitionStudents[y] = cohort.Year(y).Total
		}
		income.AvgTuitionFee[y] = mathutil.SafeDiv(income.TuitionTotal[y], income.TuitionStudents[y])
	}

	for _, line := range income.NonTuition {
		for _, y := range scenario.Years {
			income.NonTuitionTotal[y] += line.Amount[y]
		}
	}
	for _, line := range income.Dormitory {
		for _, y := range scenario.Years {
			income.DormitoryTotal[y] += line.Amount[y]
		}
	}

	incentives := conv(doc.Income.GovernmentIncentives)
	for _, row := range doc.Income.OtherInstitution {
		line := AmountLine{Key: row.Key}
		amount := conv(row.Amount)
		for _, y := range scenario.Years {
			line.Amount[y] = amount * f.Of(y)
			income.OtherIncomeTotal[y] += line.Amount[y]
		}
		income.OtherInstitution = append(income.OtherInstitution, line)
	}
	for _, y := range scenario.Years {
		income.GovernmentIncentives[y] = incentives * f.Of(y)
		income.OtherIncomeTotal[y] += income.GovernmentIncentives[y]
		income.ActivityGross[y] = income.TuitionTotal[y] + income.NonTuitionTotal[y] + income.DormitoryTotal[y]
	}
	return income
}

// FeeLine returns the non-tuition or dormitory line with key.
func (i Income) FeeLine(key string) (FeeLine, bool) {
	for _, lines := range [][]FeeLine{i.NonTuition, i.Dormitory} {
		for _, line := range lines {
			if line.Key == key {
				return line, true
			}
		}
	}
	return FeeLine{}, false
}

// feeLines projects rows whose student counts are entered per year. Each year
// reads its own count; defaults were settled at normalization.
func feeLines(rows []scenario.FeeRow, f Factors, conv func(float64) float64) []FeeLine {
	lines := make([]FeeLine, 0, len(rows))
	for _, row := range rows {
		line := FeeLine{Key: row.Key, UnitFee: conv(row.UnitFee)}
		for _, y := range scenario.Years {
			line.Students[y] = mathutil.NonNegative(row.Count(y))
			line.Amount[y] = line.Students[y] * line.UnitFee * f.Of(y)
		}
		lines = append(lines, line)
	}
	return lines
}
