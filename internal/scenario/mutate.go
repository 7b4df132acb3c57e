package scenario

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// Apply sets the field addressed by a dotted path to a raw editor value and
// returns the new snapshot together with the path, for dirty tracking. The
// input document is never modified; on error it is returned unchanged.
//
// Raw values are coerced the same way Normalize coerces documents. Writing an
// HR-derived operating row returns ErrHRDerivedExpense; a path that does not
// name an editable field returns ErrUnknownField.
func Apply(doc Document, path string, value interface{}) (Document, string, error) {
	path = strings.TrimSpace(path)
	parts := strings.Split(path, ".")
	next := doc.Clone()

	var err error
	switch parts[0] {
	case "name":
		err = want(parts, 1)
		next.Name = toString(value)
	case "academicYear":
		err = want(parts, 1)
		next.AcademicYear = toString(value)
	case "programType":
		err = want(parts, 1)
		next.ProgramType = normalizeProgramType(value)
	case "currency":
		err = applyCurrency(&next, parts, value)
	case "inflation":
		err = applyInflation(&next, parts, value)
	case "kademe":
		err = applyKademe(&next, parts, value)
	case "grades":
		err = applyGrades(&next, parts, value)
	case "capacity":
		err = applyCapacity(&next, parts, value)
	case "income":
		err = applyIncome(&next, parts, value)
	case "discounts":
		err = applyDiscount(&next, parts, value)
	case "hr":
		err = applyHR(&next, parts, value)
	case "expenses":
		err = applyExpenses(&next, parts, value)
	default:
		err = unknown(parts)
	}
	if err != nil {
		return doc, path, err
	}
	return next, path, nil
}

// SetCapacity sets the seat capacity of band for period p.
func SetCapacity(doc Document, band kademe.Band, p Period, capacity float64) (Document, error) {
	next, _, err := Apply(doc, "capacity."+string(band)+"."+p.Key(), capacity)
	return next, err
}

// SetDiscountRatio sets the stored ratio of discount index for year y.
func SetDiscountRatio(doc Document, index int, y Year, ratio float64) (Document, error) {
	field := "ratio"
	if y != Y1 {
		field = "ratio" + strings.ToUpper(y.Key())
	}
	next, _, err := Apply(doc, fmt.Sprintf("discounts.%d.%s", index, field), ratio)
	return next, err
}

// SetOperatingExpense sets the Y1 amount of an operating expense row.
func SetOperatingExpense(doc Document, key string, amount float64) (Document, error) {
	next, _, err := Apply(doc, "expenses.operating."+key, amount)
	return next, err
}

// AddDiscount appends a discount definition, normalized the way documents are.
func AddDiscount(doc Document, d Discount) Document {
	next := doc.Clone()
	d.Mode = strings.ToLower(d.Mode)
	if d.Mode != ModeFixed {
		d.Mode = ModePercent
	}
	d.Value = discountValue(d.Mode, mathutil.Finite(d.Value))
	if d.ValueY2 != nil {
		d.ValueY2 = mathutil.Ptr(discountValue(d.Mode, mathutil.Finite(*d.ValueY2)))
	}
	if d.ValueY3 != nil {
		d.ValueY3 = mathutil.Ptr(discountValue(d.Mode, mathutil.Finite(*d.ValueY3)))
	}
	d.Ratio = mathutil.Clamp01(d.Ratio)
	d.RatioY2 = mathutil.Clamp01(d.RatioY2)
	d.RatioY3 = mathutil.Clamp01(d.RatioY3)
	d.StudentCount = mathutil.NonNegative(d.StudentCount)
	d.StudentCountY2 = mathutil.NonNegative(d.StudentCountY2)
	d.StudentCountY3 = mathutil.NonNegative(d.StudentCountY3)
	next.Discounts = append(next.Discounts, d)
	return next
}

// RemoveDiscount drops the discount at index.
func RemoveDiscount(doc Document, index int) (Document, error) {
	if index < 0 || index >= len(doc.Discounts) {
		return doc, fmt.Errorf("%w: discounts.%d", ErrUnknownField, index)
	}
	next := doc.Clone()
	next.Discounts = append(next.Discounts[:index], next.Discounts[index+1:]...)
	return next, nil
}

func want(parts []string, n int) error {
	if len(parts) != n {
		return unknown(parts)
	}
	return nil
}

func unknown(parts []string) error {
	return fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(parts, "."))
}

func applyCurrency(doc *Document, parts []string, value interface{}) error {
	if err := want(parts, 2); err != nil {
		return err
	}
	switch parts[1] {
	case "entry":
		doc.Currency.Entry = constants.CurrencyLocal
		if strings.EqualFold(toString(value), constants.CurrencyUSD) {
			doc.Currency.Entry = constants.CurrencyUSD
		}
	case "localCode":
		code := strings.ToUpper(toString(value))
		if code == "" || code == constants.CurrencyUSD {
			code = constants.DefaultLocalCurrencyCode
		}
		doc.Currency.LocalCode = code
	case "fxRate":
		doc.Currency.FXRate = mathutil.NonNegative(toNumber(value))
	default:
		return unknown(parts)
	}
	return nil
}

func applyInflation(doc *Document, parts []string, value interface{}) error {
	if err := want(parts, 2); err != nil {
		return err
	}
	switch parts[1] {
	case "y2":
		doc.Inflation.Y2 = toNumber(value)
	case "y3":
		doc.Inflation.Y3 = toNumber(value)
	default:
		return unknown(parts)
	}
	return nil
}

func applyKademe(doc *Document, parts []string, value interface{}) error {
	if err := want(parts, 3); err != nil {
		return err
	}
	if !kademe.IsBand(parts[1]) {
		return unknown(parts)
	}
	band := kademe.Band(parts[1])
	r := doc.Kademe[band]
	switch parts[2] {
	case "enabled":
		r.Enabled = toBool(value, r.Enabled)
	case "from":
		r.From = toString(value)
	case "to":
		r.To = toString(value)
	default:
		return unknown(parts)
	}
	doc.Kademe[band] = r
	doc.Kademe = doc.Kademe.Normalize()
	return nil
}

// applyGrades handles grades.current.<grade>.<field> and
// grades.planning.<year>.<grade>.<field>.
func applyGrades(doc *Document, parts []string, value interface{}) error {
	if len(parts) < 2 {
		return unknown(parts)
	}
	var rows *[]kademe.GradeRow
	var rest []string
	switch parts[1] {
	case "current":
		rows = &doc.Grades.Current
		rest = parts[2:]
	case "planning":
		if len(parts) < 3 {
			return unknown(parts)
		}
		y, ok := ParseYear(parts[2])
		if !ok {
			return unknown(parts)
		}
		rows = doc.Grades.Planning.yearPtr(y)
		rest = parts[3:]
	default:
		return unknown(parts)
	}
	if len(rest) != 2 {
		return unknown(parts)
	}
	grade, ok := kademe.NormalizeGrade(rest[0])
	if !ok {
		return unknown(parts)
	}

	v := mathutil.NonNegative(toNumber(value))
	idx := -1
	for i, row := range *rows {
		if row.Grade == grade {
			idx = i
			break
		}
	}
	if idx < 0 {
		*rows = append(*rows, kademe.GradeRow{Grade: grade})
		sort.SliceStable(*rows, func(i, j int) bool {
			return kademe.GradeIndex((*rows)[i].Grade) < kademe.GradeIndex((*rows)[j].Grade)
		})
		for i, row := range *rows {
			if row.Grade == grade {
				idx = i
				break
			}
		}
	}
	switch rest[1] {
	case "branchCount":
		(*rows)[idx].BranchCount = v
	case "totalStudents":
		(*rows)[idx].TotalStudents = v
	default:
		return unknown(parts)
	}
	return nil
}

func applyCapacity(doc *Document, parts []string, value interface{}) error {
	if err := want(parts, 3); err != nil {
		return err
	}
	if !kademe.IsBand(parts[1]) {
		return unknown(parts)
	}
	p, ok := ParsePeriod(parts[2])
	if !ok {
		return unknown(parts)
	}
	band := kademe.Band(parts[1])
	row := doc.Capacity[band]
	row.Caps = row.Caps.Set(p, mathutil.NonNegative(toNumber(value)))
	doc.Capacity[band] = row
	return nil
}

func applyIncome(doc *Document, parts []string, value interface{}) error {
	if len(parts) == 2 && parts[1] == "governmentIncentives" {
		doc.Income.GovernmentIncentives = mathutil.NonNegative(toNumber(value))
		return nil
	}
	if err := want(parts, 4); err != nil {
		return err
	}
	key, field := parts[2], parts[3]
	v := mathutil.NonNegative(toNumber(value))

	switch parts[1] {
	case "tuition":
		for i := range doc.Income.Tuition {
			if doc.Income.Tuition[i].Key == key && field == "unitFee" {
				doc.Income.Tuition[i].UnitFee = v
				return nil
			}
		}
	case "nonTuition":
		return setFeeRow(doc.Income.NonTuition, key, field, v, parts)
	case "dormitory":
		return setFeeRow(doc.Income.Dormitory, key, field, v, parts)
	case "otherInstitution":
		for i := range doc.Income.OtherInstitution {
			if doc.Income.OtherInstitution[i].Key == key && field == "amount" {
				doc.Income.OtherInstitution[i].Amount = v
				return nil
			}
		}
	}
	return unknown(parts)
}

func setFeeRow(rows []FeeRow, key, field string, v float64, parts []string) error {
	i := FindFeeRow(rows, key)
	if i < 0 {
		return unknown(parts)
	}
	switch field {
	case "unitFee":
		rows[i].UnitFee = v
	case "studentCount":
		rows[i].StudentCount = v
	case "studentCountY2":
		rows[i].StudentCountY2 = v
	case "studentCountY3":
		rows[i].StudentCountY3 = v
	default:
		return unknown(parts)
	}
	return nil
}

func applyDiscount(doc *Document, parts []string, value interface{}) error {
	if err := want(parts, 3); err != nil {
		return err
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 || index >= len(doc.Discounts) {
		return unknown(parts)
	}
	d := &doc.Discounts[index]

	switch parts[2] {
	case "name":
		d.Name = toString(value)
	case "mode":
		d.Mode = ModePercent
		if strings.EqualFold(toString(value), ModeFixed) {
			d.Mode = ModeFixed
		}
		d.Value = discountValue(d.Mode, d.Value)
		if d.ValueY2 != nil {
			d.ValueY2 = mathutil.Ptr(discountValue(d.Mode, *d.ValueY2))
		}
		if d.ValueY3 != nil {
			d.ValueY3 = mathutil.Ptr(discountValue(d.Mode, *d.ValueY3))
		}
	case "value":
		d.Value = discountValue(d.Mode, toNumber(value))
	case "valueY2":
		d.ValueY2 = optionalValue(d.Mode, value)
	case "valueY3":
		d.ValueY3 = optionalValue(d.Mode, value)
	case "ratio":
		d.Ratio = mathutil.Clamp01(toNumber(value))
	case "ratioY2":
		d.RatioY2 = mathutil.Clamp01(toNumber(value))
	case "ratioY3":
		d.RatioY3 = mathutil.Clamp01(toNumber(value))
	case "studentCount":
		d.StudentCount = mathutil.NonNegative(toNumber(value))
	case "studentCountY2":
		d.StudentCountY2 = mathutil.NonNegative(toNumber(value))
	case "studentCountY3":
		d.StudentCountY3 = mathutil.NonNegative(toNumber(value))
	default:
		return unknown(parts)
	}
	return nil
}

// optionalValue clears a year-specific value when the editor sends null or an
// empty string, so the year falls back to its Y1 default.
func optionalValue(mode string, value interface{}) *float64 {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return nil
	}
	return mathutil.Ptr(discountValue(mode, toNumber(value)))
}

// applyHR handles hr.unitCostRatio, hr.years.y1.unitCosts.<role> and
// hr.years.<y>.headcounts.<band>.<role>.
func applyHR(doc *Document, parts []string, value interface{}) error {
	if len(parts) == 2 && parts[1] == "unitCostRatio" {
		v := toNumber(value)
		if v <= 0 {
			v = constants.DefaultUnitCostRatio
		}
		doc.HR.UnitCostRatio = v
		return nil
	}
	if len(parts) < 5 || parts[1] != "years" {
		return unknown(parts)
	}
	y, ok := ParseYear(parts[2])
	if !ok {
		return unknown(parts)
	}
	data := doc.HR.Years.yearPtr(y)
	v := mathutil.NonNegative(toNumber(value))

	switch parts[3] {
	case "unitCosts":
		// Later years grow from Y1 unit costs, so only Y1 is editable.
		if len(parts) != 5 || !IsRole(parts[4]) || y != Y1 {
			return unknown(parts)
		}
		data.UnitCosts[parts[4]] = v
		doc.HR.Years.mirrorUnitCosts()
	case "headcounts", "headcountsByLevel":
		if len(parts) != 6 || !kademe.IsBand(parts[4]) || !IsRole(parts[5]) {
			return unknown(parts)
		}
		band := kademe.Band(parts[4])
		if data.HeadcountsByLevel[band] == nil {
			data.HeadcountsByLevel[band] = make(map[string]float64, len(Roles))
		}
		data.HeadcountsByLevel[band][parts[5]] = v
	default:
		return unknown(parts)
	}
	return nil
}

func applyExpenses(doc *Document, parts []string, value interface{}) error {
	if len(parts) < 3 {
		return unknown(parts)
	}
	v := mathutil.NonNegative(toNumber(value))

	switch parts[1] {
	case "operating":
		if len(parts) != 3 {
			return unknown(parts)
		}
		if IsHRDerived(parts[2]) {
			return fmt.Errorf("%w: %s", ErrHRDerivedExpense, parts[2])
		}
		if !IsOperatingKey(parts[2]) {
			return unknown(parts)
		}
		doc.Expenses.Operating[parts[2]] = v
		return nil
	case "service", "dormitory":
		if len(parts) != 4 || parts[3] != "unitCost" {
			return unknown(parts)
		}
		rows := doc.Expenses.Service
		if parts[1] == "dormitory" {
			rows = doc.Expenses.Dormitory
		}
		for i := range rows {
			if rows[i].Key == parts[2] {
				rows[i].UnitCost = v
				return nil
			}
		}
	}
	return unknown(parts)
}
