package forecast

import (
	"fmt"

	"github.com/iwvelando/school-forecast/internal/engine"
	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// Table identifiers.
const (
	TableStudents      = "students"
	TableIncome        = "income"
	TableDiscounts     = "discounts"
	TableHR            = "hr"
	TableExpenses      = "expenses"
	TableExpenseShares = "expenseShares"
	TableCapacity      = "capacity"
	TableSummary       = "summary"
)

var (
	yearColumns   = []string{"Y1", "Y2", "Y3"}
	periodColumns = []string{"Current", "Y1", "Y2", "Y3"}
	shareColumns  = []string{
		"Y1 % of operating", "Y2 % of operating", "Y3 % of operating",
		"Y1 % of net revenue", "Y2 % of net revenue", "Y3 % of net revenue",
	}
)

func yearValues(v [3]float64) []*float64 {
	out := make([]*float64, len(v))
	for i := range v {
		out[i] = mathutil.Ptr(v[i])
	}
	return out
}

func optionalYearValues(v [3]*float64) []*float64 {
	out := make([]*float64, len(v))
	copy(out, v[:])
	return out
}

func periodValues(v [4]float64) []*float64 {
	out := make([]*float64, len(v))
	for i := range v {
		out[i] = mathutil.Ptr(v[i])
	}
	return out
}

// sincePrevious lays a per-year comparison out under period columns; the
// current period has nothing to compare with.
func sincePrevious(v [3]*float64) []*float64 {
	return append([]*float64{nil}, v[:]...)
}

func money(key, label string, v [3]float64) Row {
	return Row{Key: key, Label: label, Kind: KindMoney, Values: yearValues(v)}
}

func total(key, label string, v [3]float64) Row {
	r := money(key, label, v)
	r.Total = true
	return r
}

func roleLabel(key string) string {
	for _, r := range scenario.Roles {
		if r.Key == key {
			return r.Label
		}
	}
	return key
}

func studentsTable(doc scenario.Document, p engine.Projection) Table {
	t := Table{ID: TableStudents, Title: "Students", Columns: periodColumns}
	var students, branches [4]float64
	for _, band := range kademe.EnabledBands(doc.Kademe) {
		var bandStudents, bandBranches [4]float64
		for _, period := range scenario.Periods {
			totals := p.Cohort.Period(period)
			bandStudents[period] = totals.Students[band]
			bandBranches[period] = totals.Branches[band]
		}
		label := scenario.Label(string(band))
		t.Rows = append(t.Rows,
			Row{Key: string(band), Label: label, Kind: KindCount, Values: periodValues(bandStudents)},
			Row{Key: string(band) + ".branches", Label: label + " branches", Kind: KindCount, Values: periodValues(bandBranches)},
		)
	}
	for _, period := range scenario.Periods {
		students[period] = p.Cohort.Period(period).Total
		branches[period] = p.Cohort.Period(period).Branch
	}
	t.Rows = append(t.Rows,
		Row{Key: "totalStudents", Label: "Total students", Kind: KindCount, Total: true, Values: periodValues(students)},
		Row{Key: "totalBranches", Label: "Total branches", Kind: KindCount, Total: true, Values: periodValues(branches)},
	)
	return t
}

func incomeTable(p engine.Projection) Table {
	in := p.Income
	t := Table{ID: TableIncome, Title: "Income", Columns: yearColumns}

	for _, line := range in.Tuition {
		if line.Active {
			t.Rows = append(t.Rows, money(line.Key, "Tuition: "+scenario.Label(line.Key), line.Amount))
		}
	}
	t.Rows = append(t.Rows, total("tuitionTotal", "Gross tuition", in.TuitionTotal))

	for _, line := range in.NonTuition {
		t.Rows = append(t.Rows, money(line.Key, scenario.Label(line.Key), line.Amount))
	}
	t.Rows = append(t.Rows, total("nonTuitionTotal", "Non-tuition income", in.NonTuitionTotal))

	for _, line := range in.Dormitory {
		t.Rows = append(t.Rows, money(line.Key, scenario.Label(line.Key), line.Amount))
	}
	t.Rows = append(t.Rows,
		total("dormitoryTotal", "Dormitory income", in.DormitoryTotal),
		total("activityGross", "Gross activity income", in.ActivityGross),
	)

	for _, line := range in.OtherInstitution {
		t.Rows = append(t.Rows, money(line.Key, scenario.Label(line.Key), line.Amount))
	}
	t.Rows = append(t.Rows,
		money("governmentIncentives", "Government incentives", in.GovernmentIncentives),
		total("otherIncomeTotal", "Other income", in.OtherIncomeTotal),
		Row{Key: "tuitionStudents", Label: "Tuition students", Kind: KindCount, Values: yearValues(in.TuitionStudents)},
		Row{Key: "avgTuitionFee", Label: "Average tuition fee", Kind: KindMoney, Values: optionalYearValues(in.AvgTuitionFee)},
	)
	return t
}

func discountsTable(p engine.Projection) Table {
	d := p.Discounts
	t := Table{ID: TableDiscounts, Title: "Discounts", Columns: yearColumns}
	for i, line := range d.Lines {
		name := line.Name
		if name == "" {
			name = fmt.Sprintf("Discount %d", i+1)
		}
		key := fmt.Sprintf("discount.%d", i)
		t.Rows = append(t.Rows,
			Row{Key: key + ".ratio", Label: name + " (students covered)", Kind: KindRatio, Values: yearValues(line.Ratio)},
			money(key, name, line.Amount),
		)
	}
	t.Rows = append(t.Rows,
		Row{Key: "combinedRate", Label: "Combined discount rate", Kind: KindRatio, Values: yearValues(d.CombinedRate)},
		Row{Key: "cappedRate", Label: "Applied discount rate", Kind: KindRatio, Values: yearValues(d.CappedRate)},
		total("totalDiscount", "Total discount", d.Total),
		total("netActivityIncome", "Net activity income", d.NetActivityIncome),
		total("netTotalIncome", "Net total income", d.NetTotalIncome),
	)
	return t
}

func hrTable(p engine.Projection) Table {
	t := Table{ID: TableHR, Title: "Staffing", Columns: yearColumns}
	for _, rc := range p.HR.Roles {
		label := roleLabel(rc.Key)
		t.Rows = append(t.Rows,
			Row{Key: rc.Key + ".headcount", Label: label + " headcount", Kind: KindCount, Values: yearValues(rc.Headcount)},
			money(rc.Key+".unitCost", label+" unit cost", rc.UnitCost),
			money(rc.Key, label+" annual cost", rc.AnnualCost),
		)
	}
	for _, category := range scenario.SalaryCategories {
		t.Rows = append(t.Rows, money(category, scenario.Label(category), p.HR.Salaries[category]))
	}
	t.Rows = append(t.Rows,
		Row{Key: "headcount", Label: "Total headcount", Kind: KindCount, Total: true, Values: yearValues(p.HR.Headcount)},
		total("hrTotal", "Total staff cost", p.HR.Total),
	)
	return t
}

func expensesTable(p engine.Projection) Table {
	e := p.Expenses
	t := Table{ID: TableExpenses, Title: "Expenses", Columns: yearColumns}
	for _, line := range e.Operating {
		t.Rows = append(t.Rows, money(line.Key, scenario.Label(line.Key), line.Amount))
	}
	t.Rows = append(t.Rows, total("operatingTotal", "Operating expenses", e.OperatingTotal))
	for _, line := range e.Service {
		t.Rows = append(t.Rows, money(line.Key, scenario.Label(line.Key), line.Amount))
	}
	t.Rows = append(t.Rows, total("serviceTotal", "Service expenses", e.ServiceTotal))
	for _, line := range e.Dormitory {
		t.Rows = append(t.Rows, money(line.Key, scenario.Label(line.Key), line.Amount))
	}
	t.Rows = append(t.Rows,
		total("dormitoryTotal", "Dormitory expenses", e.DormitoryTotal),
		total("totalExpenses", "Total expenses", e.Total),
	)
	return t
}

func expenseSharesTable(p engine.Projection) Table {
	e := p.Expenses
	t := Table{ID: TableExpenseShares, Title: "Expense shares", Columns: shareColumns}
	noShare := [3]*float64{}

	row := func(key string, ofOperating, ofRevenue [3]*float64, isTotal bool) Row {
		values := append(optionalYearValues(ofOperating), ofRevenue[:]...)
		return Row{Key: key, Label: scenario.Label(key), Kind: KindRatio, Total: isTotal, Values: values}
	}
	for _, line := range e.Operating {
		t.Rows = append(t.Rows, row(line.Key, line.ShareOfOperating, line.ShareOfNetRevenue, false))
	}
	for _, lines := range [][]engine.ServiceLine{e.Service, e.Dormitory} {
		for _, line := range lines {
			t.Rows = append(t.Rows, row(line.Key, noShare, line.ShareOfNetRevenue, false))
		}
	}
	totalRow := row("totalExpenses", noShare, e.TotalShareOfNetRevenue, true)
	totalRow.Label = "Total expenses"
	t.Rows = append(t.Rows, totalRow)
	return t
}

func capacityRows(key, label string, line engine.CapacityLine) []Row {
	return []Row{
		{Key: key + ".students", Label: label + " students", Kind: KindCount, Values: periodValues(line.Students)},
		{Key: key + ".capacity", Label: label + " capacity", Kind: KindCount, Values: periodValues(line.Capacity)},
		{Key: key + ".utilization", Label: label + " utilization", Kind: KindRatio, Values: append([]*float64{}, line.Utilization[:]...)},
		{Key: key + ".delta", Label: label + " change", Kind: KindCount, Values: sincePrevious([3]*float64{
			mathutil.Ptr(line.Delta[0]), mathutil.Ptr(line.Delta[1]), mathutil.Ptr(line.Delta[2]),
		})},
		{Key: key + ".growth", Label: label + " growth", Kind: KindRatio, Values: sincePrevious(line.Growth)},
	}
}

func capacityTable(p engine.Projection) Table {
	t := Table{ID: TableCapacity, Title: "Capacity", Columns: periodColumns}
	for _, line := range p.Capacity.Bands {
		t.Rows = append(t.Rows, capacityRows(string(line.Band), scenario.Label(string(line.Band)), line)...)
	}
	for _, r := range capacityRows("total", "Total", p.Capacity.Total) {
		r.Total = true
		t.Rows = append(t.Rows, r)
	}
	return t
}

func summaryTable(p engine.Projection) Table {
	s := p.Summary
	return Table{ID: TableSummary, Title: "Summary", Columns: yearColumns, Rows: []Row{
		{Key: "students", Label: "Students", Kind: KindCount, Values: yearValues(s.Students)},
		total("netRevenue", "Net revenue", s.NetRevenue),
		total("totalExpenses", "Total expenses", s.TotalExpenses),
		total("netResult", "Net result", s.NetResult),
		{Key: "margin", Label: "Margin", Kind: KindRatio, Values: optionalYearValues(s.Margin)},
		{Key: "revenuePerStudent", Label: "Net revenue per student", Kind: KindMoney, Values: optionalYearValues(s.RevenuePerStudent)},
		{Key: "costPerStudent", Label: "Cost per student", Kind: KindMoney, Values: optionalYearValues(s.CostPerStudent)},
	}}
}
