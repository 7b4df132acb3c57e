package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// Normalize upgrades a decoded scenario tree of any known schema version to
// the current Document shape. It never fails: values of the wrong shape read
// as zero, unknown keys are dropped, known keys that are missing take schema
// defaults, and an input that is not an object yields Default().
//
// Normalize is idempotent: normalizing the Raw() form of a normalized document
// returns an identical document.
func Normalize(raw interface{}) Document {
	doc := Default()
	m, ok := toMap(raw)
	if !ok {
		return doc
	}

	doc.Name = toString(m["name"])
	doc.AcademicYear = toString(m["academicYear"])
	doc.ProgramType = normalizeProgramType(m["programType"])
	doc.Currency = normalizeCurrency(m)
	doc.Inflation = normalizeInflation(m)
	doc.Kademe = normalizeKademe(m)
	doc.Grades = normalizeGrades(m)
	doc.Income = normalizeIncome(m, doc.Kademe, doc.ProgramType)
	doc.Discounts = normalizeDiscounts(m)
	doc.HR = normalizeHR(m)
	doc.Expenses = normalizeExpenses(m)
	doc.Capacity = normalizeCapacity(m)
	return doc
}

// Raw returns the generic tree form of the document, as Normalize consumes it.
func (d Document) Raw() (map[string]interface{}, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenario: %w", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return out, nil
}

func normalizeProgramType(value interface{}) string {
	switch strings.ToLower(toString(value)) {
	case constants.ProgramInternational, "int", "uluslararasi":
		return constants.ProgramInternational
	}
	return constants.ProgramLocal
}

func normalizeCurrency(m map[string]interface{}) Currency {
	cm, _ := child(m, "currency")
	c := Currency{
		Entry:     constants.CurrencyLocal,
		LocalCode: strings.ToUpper(toString(cm["localCode"])),
		FXRate:    mathutil.NonNegative(numberOr(cm, "fxRate", 0)),
	}
	if c.LocalCode == "" || c.LocalCode == constants.CurrencyUSD {
		c.LocalCode = constants.DefaultLocalCurrencyCode
	}
	if strings.EqualFold(toString(cm["entry"]), constants.CurrencyUSD) {
		c.Entry = constants.CurrencyUSD
	}
	return c
}

func normalizeInflation(m map[string]interface{}) Inflation {
	im, _ := child(m, "inflation")
	return Inflation{
		Y2: numberOr(im, "y2", 0),
		Y3: numberOr(im, "y3", 0),
	}
}

func normalizeKademe(m map[string]interface{}) kademe.Config {
	km, _ := child(m, "kademe")
	config := make(kademe.Config, len(kademe.Bands))
	for _, band := range kademe.Bands {
		bm, ok := child(km, string(band))
		if !ok {
			continue
		}
		config[band] = kademe.Range{
			Enabled: toBool(bm["enabled"], true),
			From:    toString(bm["from"]),
			To:      toString(bm["to"]),
		}
	}
	return config.Normalize()
}

func parseGradeRows(value interface{}) []kademe.GradeRow {
	rows := []kademe.GradeRow{}
	items, ok := toSlice(value)
	if !ok {
		return rows
	}
	for _, item := range items {
		rm, ok := toMap(item)
		if !ok {
			continue
		}
		grade, ok := kademe.NormalizeGrade(toString(rm["grade"]))
		if !ok {
			continue
		}
		students, present := number(rm, "totalStudents")
		if !present {
			students = numberOr(rm, "studentCount", 0)
		}
		rows = append(rows, kademe.GradeRow{
			Grade:         grade,
			BranchCount:   mathutil.NonNegative(numberOr(rm, "branchCount", 0)),
			TotalStudents: mathutil.NonNegative(students),
		})
	}
	return rows
}

func copyRows(rows []kademe.GradeRow) []kademe.GradeRow {
	out := make([]kademe.GradeRow, len(rows))
	copy(out, rows)
	return out
}

func normalizeGrades(m map[string]interface{}) Grades {
	gm, ok := child(m, "grades")
	if !ok {
		// Pre-v2 documents kept grade data at the top level.
		gm = map[string]interface{}{
			"current":  m["currentGrades"],
			"planning": m["planningGrades"],
		}
	}

	g := Grades{Current: parseGradeRows(gm["current"])}

	planning := gm["planning"]
	if _, isList := toSlice(planning); isList {
		y1 := parseGradeRows(planning)
		g.Planning = PlanningGrades{Y1: y1, Y2: copyRows(y1), Y3: copyRows(y1)}
		return g
	}

	pm, _ := toMap(planning)
	g.Planning.Y1 = parseGradeRows(pm["y1"])
	for _, y := range []Year{Y2, Y3} {
		target := g.Planning.yearPtr(y)
		if v, present := pm[y.Key()]; present && v != nil {
			*target = parseGradeRows(v)
		} else {
			*target = copyRows(g.Planning.Y1)
		}
	}
	return g
}

func normalizeIncome(m map[string]interface{}, config kademe.Config, programType string) Income {
	im, _ := child(m, "income")
	income := Default().Income

	if items, ok := childSlice(im, "tuition"); ok {
		keyed := keyedRows(items)
		for i := range income.Tuition {
			income.Tuition[i].UnitFee = mathutil.NonNegative(numberOr(keyed[income.Tuition[i].Key], "unitFee", 0))
		}
	} else if flat, ok := legacyNumber(m, im, "tuitionFeePerStudentYearly"); ok {
		// Flat-fee schema: one row per enabled band at the flat fee. Counts
		// are derived from the cohort, so nothing else needs migrating.
		for _, band := range kademe.EnabledBands(config) {
			key := TuitionKey(band, programType)
			for i := range income.Tuition {
				if income.Tuition[i].Key == key {
					income.Tuition[i].UnitFee = mathutil.NonNegative(flat)
				}
			}
		}
	}

	income.NonTuition = parseFeeRows(im, "nonTuition", NonTuitionKeys)
	income.Dormitory = parseFeeRows(im, "dormitory", DormitoryKeys)

	if items, ok := childSlice(im, "otherInstitution"); ok {
		keyed := keyedRows(items)
		for i := range income.OtherInstitution {
			income.OtherInstitution[i].Amount = mathutil.NonNegative(numberOr(keyed[income.OtherInstitution[i].Key], "amount", 0))
		}
	} else if flat, ok := number(m, "otherIncome"); ok {
		for i := range income.OtherInstitution {
			if income.OtherInstitution[i].Key == LegacyOtherIncomeKey {
				income.OtherInstitution[i].Amount = mathutil.NonNegative(flat)
			}
		}
	}

	if v, ok := legacyNumber(m, im, "governmentIncentives"); ok {
		income.GovernmentIncentives = mathutil.NonNegative(v)
	}
	return income
}

// legacyNumber reads key from the income block, falling back to the top level
// where flat schemas stored it.
func legacyNumber(top, income map[string]interface{}, key string) (float64, bool) {
	if v, ok := number(income, key); ok {
		return v, true
	}
	return number(top, key)
}

func parseFeeRows(im map[string]interface{}, field string, keys []string) []FeeRow {
	items, _ := childSlice(im, field)
	keyed := keyedRows(items)
	rows := make([]FeeRow, 0, len(keys))
	for _, key := range keys {
		rm := keyed[key]
		y1 := mathutil.NonNegative(numberOr(rm, "studentCount", 0))
		rows = append(rows, FeeRow{
			Key:            key,
			UnitFee:        mathutil.NonNegative(numberOr(rm, "unitFee", 0)),
			StudentCount:   y1,
			StudentCountY2: mathutil.NonNegative(numberOr(rm, "studentCountY2", y1)),
			StudentCountY3: mathutil.NonNegative(numberOr(rm, "studentCountY3", y1)),
		})
	}
	return rows
}

func normalizeDiscounts(m map[string]interface{}) []Discount {
	out := []Discount{}
	items, ok := childSlice(m, "discounts")
	if !ok {
		return out
	}
	for _, item := range items {
		dm, ok := toMap(item)
		if !ok {
			continue
		}
		d := Discount{
			Name: toString(dm["name"]),
			Mode: ModePercent,
		}
		if strings.EqualFold(toString(dm["mode"]), ModeFixed) {
			d.Mode = ModeFixed
		}
		d.Value = discountValue(d.Mode, numberOr(dm, "value", 0))
		if v, ok := number(dm, "valueY2"); ok {
			d.ValueY2 = mathutil.Ptr(discountValue(d.Mode, v))
		}
		if v, ok := number(dm, "valueY3"); ok {
			d.ValueY3 = mathutil.Ptr(discountValue(d.Mode, v))
		}
		d.Ratio = mathutil.Clamp01(numberOr(dm, "ratio", 0))
		d.RatioY2 = mathutil.Clamp01(numberOr(dm, "ratioY2", d.Ratio))
		d.RatioY3 = mathutil.Clamp01(numberOr(dm, "ratioY3", d.Ratio))
		d.StudentCount = mathutil.NonNegative(numberOr(dm, "studentCount", 0))
		d.StudentCountY2 = mathutil.NonNegative(numberOr(dm, "studentCountY2", d.StudentCount))
		d.StudentCountY3 = mathutil.NonNegative(numberOr(dm, "studentCountY3", d.StudentCount))
		out = append(out, d)
	}
	return out
}

func discountValue(mode string, v float64) float64 {
	if mode == ModePercent {
		return mathutil.Clamp01(v)
	}
	return mathutil.NonNegative(v)
}

func normalizeHR(m map[string]interface{}) HR {
	hm, ok := child(m, "hr")
	if !ok {
		hm, _ = child(m, "ik")
	}

	hr := HR{UnitCostRatio: constants.DefaultUnitCostRatio}
	if v, ok := number(hm, "unitCostRatio"); ok && v > 0 {
		hr.UnitCostRatio = v
	}

	ym, ok := child(hm, "years")
	if !ok {
		// Single-year schema stored y1 data directly under hr.
		ym = map[string]interface{}{"y1": hm}
	}
	y1m, _ := child(ym, "y1")
	hr.Years.Y1 = parseYearData(y1m)
	for _, y := range []Year{Y2, Y3} {
		if yearMap, ok := child(ym, y.Key()); ok {
			*hr.Years.yearPtr(y) = parseYearData(yearMap)
		} else {
			*hr.Years.yearPtr(y) = hr.Years.Y1.Clone()
		}
	}
	hr.Years.mirrorUnitCosts()
	return hr
}

func parseYearData(m map[string]interface{}) IKYearData {
	data := emptyYearData()
	costs, _ := child(m, "unitCosts")
	for _, role := range Roles {
		data.UnitCosts[role.Key] = mathutil.NonNegative(numberOr(costs, role.Key, 0))
	}
	levels, ok := child(m, "headcountsByLevel")
	if !ok {
		levels, _ = child(m, "headcounts")
	}
	for _, band := range kademe.Bands {
		bm, _ := child(levels, string(band))
		for _, role := range Roles {
			data.HeadcountsByLevel[band][role.Key] = mathutil.NonNegative(numberOr(bm, role.Key, 0))
		}
	}
	return data
}

func normalizeExpenses(m map[string]interface{}) Expenses {
	em, _ := child(m, "expenses")
	expenses := Default().Expenses

	op, _ := child(em, "operating")
	for key := range expenses.Operating {
		v := op[key]
		if item, ok := toMap(v); ok {
			v = item["amount"]
		}
		expenses.Operating[key] = mathutil.NonNegative(toNumber(v))
	}

	expenses.Service = parseUnitCostRows(em, "service", expenses.Service)
	expenses.Dormitory = parseUnitCostRows(em, "dormitory", expenses.Dormitory)
	return expenses
}

func parseUnitCostRows(em map[string]interface{}, field string, rows []UnitCostRow) []UnitCostRow {
	items, _ := childSlice(em, field)
	keyed := keyedRows(items)
	for i := range rows {
		rows[i].UnitCost = mathutil.NonNegative(numberOr(keyed[rows[i].Key], "unitCost", 0))
	}
	return rows
}

func normalizeCapacity(m map[string]interface{}) map[kademe.Band]CapacityRow {
	cm, _ := child(m, "capacity")
	out := make(map[kademe.Band]CapacityRow, len(kademe.Bands))
	for _, band := range kademe.Bands {
		bm, _ := child(cm, string(band))
		caps, ok := child(bm, "caps")
		if !ok {
			caps = bm
		}
		out[band] = CapacityRow{Caps: Caps{
			Cur: mathutil.NonNegative(numberOr(caps, "cur", 0)),
			Y1:  mathutil.NonNegative(numberOr(caps, "y1", 0)),
			Y2:  mathutil.NonNegative(numberOr(caps, "y2", 0)),
			Y3:  mathutil.NonNegative(numberOr(caps, "y3", 0)),
		}}
	}
	return out
}
