// Package scenario defines the scenario input document, its tolerant decoding
// and legacy upgrade path, and the mutation helpers used by the editor.
//
// A Document is an immutable snapshot: mutation helpers return a new Document
// and never modify their input, and nothing derived is cached inside it.
package scenario

import (
	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/pkg/constants"
)

// Document is the aggregate root holding every input of one scenario.
type Document struct {
	SchemaVersion int                         `json:"schemaVersion" yaml:"schemaVersion"`
	Name          string                      `json:"name" yaml:"name"`
	AcademicYear  string                      `json:"academicYear" yaml:"academicYear"`
	ProgramType   string                      `json:"programType" yaml:"programType"`
	Currency      Currency                    `json:"currency" yaml:"currency"`
	Inflation     Inflation                   `json:"inflation" yaml:"inflation"`
	Kademe        kademe.Config               `json:"kademe" yaml:"kademe"`
	Grades        Grades                      `json:"grades" yaml:"grades"`
	Income        Income                      `json:"income" yaml:"income"`
	Discounts     []Discount                  `json:"discounts" yaml:"discounts"`
	HR            HR                          `json:"hr" yaml:"hr"`
	Expenses      Expenses                    `json:"expenses" yaml:"expenses"`
	Capacity      map[kademe.Band]CapacityRow `json:"capacity" yaml:"capacity"`
}

// Currency describes how monetary inputs were entered.
type Currency struct {
	Entry     string  `json:"entry" yaml:"entry"`
	LocalCode string  `json:"localCode" yaml:"localCode"`
	FXRate    float64 `json:"fxRate" yaml:"fxRate"` // local currency units per USD
}

// Inflation holds the fractional annual rates applied from Y1 to Y2 and Y2 to Y3.
type Inflation struct {
	Y2 float64 `json:"y2" yaml:"y2"`
	Y3 float64 `json:"y3" yaml:"y3"`
}

// Grades holds current-period rows and per-year planning rows.
type Grades struct {
	Current  []kademe.GradeRow `json:"current" yaml:"current"`
	Planning PlanningGrades    `json:"planning" yaml:"planning"`
}

// PlanningGrades holds one grade sequence per projected year.
type PlanningGrades struct {
	Y1 []kademe.GradeRow `json:"y1" yaml:"y1"`
	Y2 []kademe.GradeRow `json:"y2" yaml:"y2"`
	Y3 []kademe.GradeRow `json:"y3" yaml:"y3"`
}

// Year returns the rows of one planning year.
func (p PlanningGrades) Year(y Year) []kademe.GradeRow {
	switch y {
	case Y2:
		return p.Y2
	case Y3:
		return p.Y3
	}
	return p.Y1
}

func (p *PlanningGrades) yearPtr(y Year) *[]kademe.GradeRow {
	switch y {
	case Y2:
		return &p.Y2
	case Y3:
		return &p.Y3
	}
	return &p.Y1
}

// Income holds every revenue input.
type Income struct {
	Tuition              []TuitionRow `json:"tuition" yaml:"tuition"`
	NonTuition           []FeeRow     `json:"nonTuition" yaml:"nonTuition"`
	Dormitory            []FeeRow     `json:"dormitory" yaml:"dormitory"`
	OtherInstitution     []AmountRow  `json:"otherInstitution" yaml:"otherInstitution"`
	GovernmentIncentives float64      `json:"governmentIncentives" yaml:"governmentIncentives"`
}

// TuitionRow carries a unit fee only; its student counts are derived from the
// grade planning of its base band.
type TuitionRow struct {
	Key     string  `json:"key" yaml:"key"`
	UnitFee float64 `json:"unitFee" yaml:"unitFee"`
}

// FeeRow is a non-tuition or dormitory income row with manual per-year counts.
type FeeRow struct {
	Key            string  `json:"key" yaml:"key"`
	UnitFee        float64 `json:"unitFee" yaml:"unitFee"`
	StudentCount   float64 `json:"studentCount" yaml:"studentCount"`
	StudentCountY2 float64 `json:"studentCountY2" yaml:"studentCountY2"`
	StudentCountY3 float64 `json:"studentCountY3" yaml:"studentCountY3"`
}

// Count returns the student count entered for year y.
func (r FeeRow) Count(y Year) float64 {
	switch y {
	case Y2:
		return r.StudentCountY2
	case Y3:
		return r.StudentCountY3
	}
	return r.StudentCount
}

// AmountRow is a flat Y1 amount.
type AmountRow struct {
	Key    string  `json:"key" yaml:"key"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Discount modes.
const (
	ModePercent = "percent"
	ModeFixed   = "fixed"
)

// Discount is one scholarship or discount definition.
type Discount struct {
	Name           string   `json:"name" yaml:"name"`
	Mode           string   `json:"mode" yaml:"mode"`
	Value          float64  `json:"value" yaml:"value"`
	ValueY2        *float64 `json:"valueY2,omitempty" yaml:"valueY2,omitempty"`
	ValueY3        *float64 `json:"valueY3,omitempty" yaml:"valueY3,omitempty"`
	Ratio          float64  `json:"ratio" yaml:"ratio"`
	RatioY2        float64  `json:"ratioY2" yaml:"ratioY2"`
	RatioY3        float64  `json:"ratioY3" yaml:"ratioY3"`
	StudentCount   float64  `json:"studentCount" yaml:"studentCount"`
	StudentCountY2 float64  `json:"studentCountY2" yaml:"studentCountY2"`
	StudentCountY3 float64  `json:"studentCountY3" yaml:"studentCountY3"`
}

// RatioFor returns the stored ratio of year y.
func (d Discount) RatioFor(y Year) float64 {
	switch y {
	case Y2:
		return d.RatioY2
	case Y3:
		return d.RatioY3
	}
	return d.Ratio
}

// CountFor returns the stored student count of year y.
func (d Discount) CountFor(y Year) float64 {
	switch y {
	case Y2:
		return d.StudentCountY2
	case Y3:
		return d.StudentCountY3
	}
	return d.StudentCount
}

// ExplicitValue returns the value entered specifically for year y, if any.
// Y1 always has an explicit value.
func (d Discount) ExplicitValue(y Year) (float64, bool) {
	switch y {
	case Y2:
		if d.ValueY2 != nil {
			return *d.ValueY2, true
		}
		return 0, false
	case Y3:
		if d.ValueY3 != nil {
			return *d.ValueY3, true
		}
		return 0, false
	}
	return d.Value, true
}

// HR holds staffing inputs.
type HR struct {
	UnitCostRatio float64 `json:"unitCostRatio" yaml:"unitCostRatio"`
	Years         HRYears `json:"years" yaml:"years"`
}

// HRYears holds one IKYearData per projected year.
type HRYears struct {
	Y1 IKYearData `json:"y1" yaml:"y1"`
	Y2 IKYearData `json:"y2" yaml:"y2"`
	Y3 IKYearData `json:"y3" yaml:"y3"`
}

// Year returns the data of year y.
func (h HRYears) Year(y Year) IKYearData {
	switch y {
	case Y2:
		return h.Y2
	case Y3:
		return h.Y3
	}
	return h.Y1
}

func (h *HRYears) yearPtr(y Year) *IKYearData {
	switch y {
	case Y2:
		return &h.Y2
	case Y3:
		return &h.Y3
	}
	return &h.Y1
}

// mirrorUnitCosts copies Y1 unit costs into Y2 and Y3.
func (h *HRYears) mirrorUnitCosts() {
	for _, data := range []*IKYearData{&h.Y2, &h.Y3} {
		costs := make(map[string]float64, len(h.Y1.UnitCosts))
		for role, v := range h.Y1.UnitCosts {
			costs[role] = v
		}
		data.UnitCosts = costs
	}
}

// IKYearData is one year of staffing: annual unit cost per role and head
// counts per band and role.
type IKYearData struct {
	UnitCosts         map[string]float64                 `json:"unitCosts" yaml:"unitCosts"`
	HeadcountsByLevel map[kademe.Band]map[string]float64 `json:"headcountsByLevel" yaml:"headcountsByLevel"`
}

// Expenses holds every cost input. Operating amounts are Y1 values.
type Expenses struct {
	Operating map[string]float64 `json:"operating" yaml:"operating"`
	Service   []UnitCostRow      `json:"service" yaml:"service"`
	Dormitory []UnitCostRow      `json:"dormitory" yaml:"dormitory"`
}

// UnitCostRow is a per-student Y1 cost.
type UnitCostRow struct {
	Key      string  `json:"key" yaml:"key"`
	UnitCost float64 `json:"unitCost" yaml:"unitCost"`
}

// Period indexes capacity periods.
type Period int

const (
	Current Period = iota
	PeriodY1
	PeriodY2
	PeriodY3
)

// Periods lists the capacity periods in order.
var Periods = []Period{Current, PeriodY1, PeriodY2, PeriodY3}

// Key returns the document key of the period.
func (p Period) Key() string {
	switch p {
	case Current:
		return "cur"
	case PeriodY1:
		return "y1"
	case PeriodY2:
		return "y2"
	case PeriodY3:
		return "y3"
	}
	return ""
}

// Label returns the column label of the period.
func (p Period) Label() string {
	if p == Current {
		return "Current"
	}
	return Year(p - 1).Label()
}

// ParsePeriod maps "cur", "y1".."y3" to a Period.
func ParsePeriod(key string) (Period, bool) {
	for _, p := range Periods {
		if p.Key() == key {
			return p, true
		}
	}
	return 0, false
}

// CapacityRow holds the seat capacity of one band for every period.
type CapacityRow struct {
	Caps Caps `json:"caps" yaml:"caps"`
}

// Caps is the per-period capacity.
type Caps struct {
	Cur float64 `json:"cur" yaml:"cur"`
	Y1  float64 `json:"y1" yaml:"y1"`
	Y2  float64 `json:"y2" yaml:"y2"`
	Y3  float64 `json:"y3" yaml:"y3"`
}

// Get returns the capacity of period p.
func (c Caps) Get(p Period) float64 {
	switch p {
	case PeriodY1:
		return c.Y1
	case PeriodY2:
		return c.Y2
	case PeriodY3:
		return c.Y3
	}
	return c.Cur
}

// Set returns a copy of c with period p set to v.
func (c Caps) Set(p Period, v float64) Caps {
	switch p {
	case PeriodY1:
		c.Y1 = v
	case PeriodY2:
		c.Y2 = v
	case PeriodY3:
		c.Y3 = v
	default:
		c.Cur = v
	}
	return c
}

// Default returns the all-zero skeleton every new scenario starts from.
func Default() Document {
	doc := Document{
		SchemaVersion: constants.SchemaVersion,
		ProgramType:   constants.ProgramLocal,
		Currency: Currency{
			Entry:     constants.CurrencyLocal,
			LocalCode: constants.DefaultLocalCurrencyCode,
		},
		Kademe: kademe.DefaultConfig(),
		Grades: Grades{
			Current:  []kademe.GradeRow{},
			Planning: PlanningGrades{Y1: []kademe.GradeRow{}, Y2: []kademe.GradeRow{}, Y3: []kademe.GradeRow{}},
		},
		Discounts: []Discount{},
		HR: HR{
			UnitCostRatio: constants.DefaultUnitCostRatio,
			Years:         HRYears{Y1: emptyYearData(), Y2: emptyYearData(), Y3: emptyYearData()},
		},
		Expenses: Expenses{
			Operating: make(map[string]float64, len(OperatingKeys)),
		},
		Capacity: make(map[kademe.Band]CapacityRow, len(kademe.Bands)),
	}

	for _, key := range TuitionKeys() {
		doc.Income.Tuition = append(doc.Income.Tuition, TuitionRow{Key: key})
	}
	for _, key := range NonTuitionKeys {
		doc.Income.NonTuition = append(doc.Income.NonTuition, FeeRow{Key: key})
	}
	for _, key := range DormitoryKeys {
		doc.Income.Dormitory = append(doc.Income.Dormitory, FeeRow{Key: key})
	}
	for _, key := range OtherInstitutionKeys {
		doc.Income.OtherInstitution = append(doc.Income.OtherInstitution, AmountRow{Key: key})
	}
	for _, key := range OperatingKeys {
		if !IsHRDerived(key) {
			doc.Expenses.Operating[key] = 0
		}
	}
	for _, pair := range ServiceExpensePairs {
		doc.Expenses.Service = append(doc.Expenses.Service, UnitCostRow{Key: pair.Expense})
	}
	for _, pair := range DormitoryExpensePairs {
		doc.Expenses.Dormitory = append(doc.Expenses.Dormitory, UnitCostRow{Key: pair.Expense})
	}
	for _, band := range kademe.Bands {
		doc.Capacity[band] = CapacityRow{}
	}
	return doc
}

func emptyYearData() IKYearData {
	data := IKYearData{
		UnitCosts:         make(map[string]float64, len(Roles)),
		HeadcountsByLevel: make(map[kademe.Band]map[string]float64, len(kademe.Bands)),
	}
	for _, role := range Roles {
		data.UnitCosts[role.Key] = 0
	}
	for _, band := range kademe.Bands {
		counts := make(map[string]float64, len(Roles))
		for _, role := range Roles {
			counts[role.Key] = 0
		}
		data.HeadcountsByLevel[band] = counts
	}
	return data
}

// FindFeeRow returns the index of key in rows, or -1.
func FindFeeRow(rows []FeeRow, key string) int {
	for i, r := range rows {
		if r.Key == key {
			return i
		}
	}
	return -1
}
