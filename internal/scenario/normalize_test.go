package scenario

import (
	"math"
	"reflect"
	"testing"

	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/pkg/constants"
)

func legacyDocument() map[string]interface{} {
	return map[string]interface{}{
		"name":                       "  Legacy Campus ",
		"programType":                "local",
		"tuitionFeePerStudentYearly": 1200,
		"otherIncome":                5000.0,
		"governmentIncentives":       "2500",
		"planningGrades": []interface{}{
			map[string]interface{}{"grade": "KG", "branchCount": 2, "totalStudents": 30},
			map[string]interface{}{"grade": 1, "branchCount": 1, "totalStudents": 24},
			map[string]interface{}{"grade": "13", "totalStudents": 99},
		},
		"ik": map[string]interface{}{
			"unitCosts": map[string]interface{}{"turkEgitimci": 1000},
			"headcounts": map[string]interface{}{
				"ilkokul": map[string]interface{}{"turkEgitimci": 2},
			},
		},
		"capacity": map[string]interface{}{
			"okulOncesi": map[string]interface{}{"cur": 35, "y1": 40},
		},
		"somethingObsolete": true,
	}
}

func TestNormalizeNonObjectYieldsSkeleton(t *testing.T) {
	inputs := []interface{}{nil, "scenario", 42.0, []interface{}{1, 2}}
	for _, input := range inputs {
		if got := Normalize(input); !reflect.DeepEqual(got, Default()) {
			t.Errorf("Normalize(%v) did not return the default skeleton", input)
		}
	}
}

func TestNormalizeLegacyMigration(t *testing.T) {
	doc := Normalize(legacyDocument())

	if doc.SchemaVersion != constants.SchemaVersion {
		t.Errorf("schema version = %d, expected %d", doc.SchemaVersion, constants.SchemaVersion)
	}
	if doc.Name != "Legacy Campus" {
		t.Errorf("name = %q", doc.Name)
	}

	if len(doc.Grades.Planning.Y1) != 2 {
		t.Fatalf("expected 2 valid planning rows, got %d", len(doc.Grades.Planning.Y1))
	}
	if !reflect.DeepEqual(doc.Grades.Planning.Y1, doc.Grades.Planning.Y2) || !reflect.DeepEqual(doc.Grades.Planning.Y1, doc.Grades.Planning.Y3) {
		t.Errorf("flat planning grades should seed y2 and y3 from y1")
	}

	for _, row := range doc.Income.Tuition {
		band, program, _ := ParseTuitionKey(row.Key)
		want := 0.0
		if program == constants.ProgramLocal && doc.Kademe[band].Enabled {
			want = 1200
		}
		if row.UnitFee != want {
			t.Errorf("tuition row %s unit fee = %v, expected %v", row.Key, row.UnitFee, want)
		}
	}

	for _, row := range doc.Income.OtherInstitution {
		if row.Key == LegacyOtherIncomeKey && row.Amount != 5000 {
			t.Errorf("legacy other income not migrated, got %v", row.Amount)
		}
	}
	if doc.Income.GovernmentIncentives != 2500 {
		t.Errorf("government incentives = %v", doc.Income.GovernmentIncentives)
	}

	if doc.HR.UnitCostRatio != constants.DefaultUnitCostRatio {
		t.Errorf("unit cost ratio = %v", doc.HR.UnitCostRatio)
	}
	if doc.HR.Years.Y1.UnitCosts["turkEgitimci"] != 1000 {
		t.Errorf("legacy ik unit costs not migrated")
	}
	if doc.HR.Years.Y3.HeadcountsByLevel[kademe.Ilkokul]["turkEgitimci"] != 2 {
		t.Errorf("y3 headcounts should default to y1")
	}

	if doc.Capacity[kademe.OkulOncesi].Caps.Y1 != 40 || doc.Capacity[kademe.Lise].Caps.Y1 != 0 {
		t.Errorf("capacity = %+v", doc.Capacity)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := map[string]interface{}{
		"legacy":  legacyDocument(),
		"current": sampleRaw(),
		"empty":   map[string]interface{}{},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			once := Normalize(input)
			raw, err := once.Raw()
			if err != nil {
				t.Fatalf("Raw() error = %v", err)
			}
			twice := Normalize(raw)
			if !reflect.DeepEqual(once, twice) {
				t.Errorf("normalizing twice changed the document\nonce:  %+v\ntwice: %+v", once, twice)
			}
		})
	}
}

func TestNormalizeFeeRowDefaults(t *testing.T) {
	doc := Normalize(map[string]interface{}{
		"income": map[string]interface{}{
			"nonTuition": []interface{}{
				map[string]interface{}{"key": "yemek", "unitFee": 300, "studentCount": 80},
				map[string]interface{}{"key": "uniforma", "unitFee": 50, "studentCount": 80, "studentCountY2": 90},
				map[string]interface{}{"key": "unknownFee", "unitFee": 999, "studentCount": 1},
			},
		},
	})

	yemek := doc.Income.NonTuition[FindFeeRow(doc.Income.NonTuition, "yemek")]
	if yemek.StudentCountY2 != 80 || yemek.StudentCountY3 != 80 {
		t.Errorf("unset Y2/Y3 counts should default to Y1, got %+v", yemek)
	}

	uniforma := doc.Income.NonTuition[FindFeeRow(doc.Income.NonTuition, "uniforma")]
	if uniforma.StudentCountY2 != 90 || uniforma.StudentCountY3 != 80 {
		t.Errorf("Y3 must default to Y1, not cascade from Y2, got %+v", uniforma)
	}

	if FindFeeRow(doc.Income.NonTuition, "unknownFee") >= 0 {
		t.Errorf("unknown fee rows should be dropped")
	}
	if len(doc.Income.NonTuition) != len(NonTuitionKeys) {
		t.Errorf("expected every known non-tuition row, got %d", len(doc.Income.NonTuition))
	}
}

func TestNormalizeDiscounts(t *testing.T) {
	doc := Normalize(map[string]interface{}{
		"discounts": []interface{}{
			map[string]interface{}{"name": "Sibling", "mode": "percent", "value": 1.5, "ratio": 0.4, "ratioY3": -1},
			map[string]interface{}{"name": "Staff", "mode": "FIXED", "value": 300, "valueY3": 450, "studentCount": 12},
			"not a discount",
		},
	})

	if len(doc.Discounts) != 2 {
		t.Fatalf("expected 2 discounts, got %d", len(doc.Discounts))
	}
	sibling := doc.Discounts[0]
	if sibling.Value != 1 || sibling.RatioY2 != 0.4 || sibling.RatioY3 != 0 {
		t.Errorf("sibling discount = %+v", sibling)
	}
	staff := doc.Discounts[1]
	if staff.Mode != ModeFixed || staff.ValueY2 != nil || staff.ValueY3 == nil || *staff.ValueY3 != 450 {
		t.Errorf("staff discount = %+v", staff)
	}
	if staff.StudentCountY2 != 12 || staff.StudentCountY3 != 12 {
		t.Errorf("staff discount counts should default to Y1, got %+v", staff)
	}
}

func TestNormalizeCoercesNonFinite(t *testing.T) {
	doc := Normalize(map[string]interface{}{
		"inflation": map[string]interface{}{"y2": math.Inf(1), "y3": -0.05},
		"currency":  map[string]interface{}{"entry": "usd", "fxRate": math.NaN(), "localCode": "eur"},
		"expenses": map[string]interface{}{
			"operating": map[string]interface{}{
				"kira":             map[string]interface{}{"amount": 12000},
				"enerji":           "3000",
				"turkPersonelMaas": 99999,
				"bogus":            1,
			},
		},
	})

	if doc.Inflation.Y2 != 0 || doc.Inflation.Y3 != -0.05 {
		t.Errorf("inflation = %+v", doc.Inflation)
	}
	if doc.Currency.Entry != constants.CurrencyUSD || doc.Currency.FXRate != 0 || doc.Currency.LocalCode != "EUR" {
		t.Errorf("currency = %+v", doc.Currency)
	}
	if doc.Expenses.Operating["kira"] != 12000 || doc.Expenses.Operating["enerji"] != 3000 {
		t.Errorf("operating = %+v", doc.Expenses.Operating)
	}
	if _, ok := doc.Expenses.Operating["turkPersonelMaas"]; ok {
		t.Errorf("HR-derived keys must not be stored as operating inputs")
	}
	if _, ok := doc.Expenses.Operating["bogus"]; ok {
		t.Errorf("unknown operating keys must be dropped")
	}
}

func TestNormalizeUnitCostsFollowY1(t *testing.T) {
	doc := Normalize(map[string]interface{}{
		"hr": map[string]interface{}{
			"years": map[string]interface{}{
				"y1": map[string]interface{}{"unitCosts": map[string]interface{}{"turkEgitimci": 1000}},
				"y2": map[string]interface{}{
					"unitCosts":         map[string]interface{}{"turkEgitimci": 5000},
					"headcountsByLevel": map[string]interface{}{"ilkokul": map[string]interface{}{"turkEgitimci": 3}},
				},
			},
		},
	})

	for _, y := range []Year{Y2, Y3} {
		if got := doc.HR.Years.Year(y).UnitCosts["turkEgitimci"]; got != 1000 {
			t.Errorf("%s unit cost = %v, expected the Y1 value 1000", y.Key(), got)
		}
	}
	if got := doc.HR.Years.Y2.HeadcountsByLevel[kademe.Ilkokul]["turkEgitimci"]; got != 3 {
		t.Errorf("Y2 headcount = %v, expected 3", got)
	}
}
