package forecast_test

import (
	"reflect"
	"testing"

	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/testutil"
	"go.uber.org/zap"
)

func TestAssembleTables(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	f, err := forecast.Assemble(logger, testutil.SampleScenario(), forecast.Options{})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	wantIDs := []string{
		forecast.TableStudents, forecast.TableIncome, forecast.TableDiscounts, forecast.TableHR,
		forecast.TableExpenses, forecast.TableExpenseShares, forecast.TableCapacity, forecast.TableSummary,
	}
	var ids []string
	for _, table := range f.Tables {
		ids = append(ids, table.ID)
		for _, row := range table.Rows {
			if len(row.Values) != len(table.Columns) {
				t.Errorf("table %s row %s has %d values for %d columns", table.ID, row.Key, len(row.Values), len(table.Columns))
			}
		}
	}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Errorf("table ids = %v, expected %v", ids, wantIDs)
	}
	if f.Currency != "TRY" {
		t.Errorf("currency = %q, expected TRY", f.Currency)
	}
	if f.Warnings == nil {
		t.Errorf("warnings should be an empty list, not nil")
	}
}

func TestAssembleMatchesProjection(t *testing.T) {
	f, err := forecast.Assemble(nil, testutil.SampleScenario(), forecast.Options{})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	p := f.Projection

	tests := []struct {
		table, key string
		expected   [3]float64
	}{
		{forecast.TableIncome, "tuitionTotal", p.Income.TuitionTotal},
		{forecast.TableIncome, "activityGross", p.Income.ActivityGross},
		{forecast.TableDiscounts, "totalDiscount", p.Discounts.Total},
		{forecast.TableDiscounts, "netTotalIncome", p.Discounts.NetTotalIncome},
		{forecast.TableHR, "hrTotal", p.HR.Total},
		{forecast.TableExpenses, scenario.TurkPersonelMaas, p.HR.Salaries[scenario.TurkPersonelMaas]},
		{forecast.TableExpenses, "totalExpenses", p.Expenses.Total},
		{forecast.TableSummary, "netResult", p.Summary.NetResult},
	}

	for _, tt := range tests {
		t.Run(tt.table+"/"+tt.key, func(t *testing.T) {
			row := testutil.FindRow(f, tt.table, tt.key)
			if row == nil {
				t.Fatalf("row %s not found in table %s", tt.key, tt.table)
			}
			for i, want := range tt.expected {
				if got := testutil.Value(row, i); got != want {
					t.Errorf("value %d = %v, expected %v", i, got, want)
				}
			}
		})
	}

	// Y1 tuition: 25 x 800 + 45 x 1000.
	if got := testutil.Value(testutil.FindRow(f, forecast.TableIncome, "tuitionTotal"), 0); got != 65000 {
		t.Errorf("Y1 gross tuition = %v, expected 65000", got)
	}
}

func TestAssembleSkipsInactiveTuitionRows(t *testing.T) {
	doc, _, err := scenario.Apply(testutil.SampleScenario(), "kademe.lise.enabled", false)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	tests := []struct {
		name   string
		doc    scenario.Document
		absent []string
		active []string
	}{
		{
			name:   "other program type",
			doc:    testutil.SampleScenario(),
			absent: []string{"ilkokulInt", "liseInt"},
			active: []string{"ilkokulYerel", "liseYerel"},
		},
		{
			name:   "disabled band",
			doc:    doc,
			absent: []string{"ilkokulInt", "liseInt", "liseYerel"},
			active: []string{"ilkokulYerel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := forecast.Assemble(nil, tt.doc, forecast.Options{})
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			for _, key := range tt.absent {
				if testutil.FindRow(f, forecast.TableIncome, key) != nil {
					t.Errorf("inactive tuition row %s should not be reported", key)
				}
			}
			for _, key := range tt.active {
				if testutil.FindRow(f, forecast.TableIncome, key) == nil {
					t.Errorf("active tuition row %s missing", key)
				}
			}
		})
	}
}

func TestAssembleKeepsNotApplicableValues(t *testing.T) {
	f, err := forecast.Assemble(nil, scenario.Default(), forecast.Options{})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	avg := testutil.FindRow(f, forecast.TableIncome, "avgTuitionFee")
	if avg == nil {
		t.Fatalf("avgTuitionFee row missing")
	}
	for i, v := range avg.Values {
		if v != nil {
			t.Errorf("average fee %d = %v, expected not applicable", i, *v)
		}
	}

	utilization := testutil.FindRow(f, forecast.TableCapacity, "total.utilization")
	if utilization == nil {
		t.Fatalf("total.utilization row missing")
	}
	for i, v := range utilization.Values {
		if v != nil {
			t.Errorf("utilization %d = %v, expected not applicable", i, *v)
		}
	}

	growth := testutil.FindRow(f, forecast.TableCapacity, "ilkokul.growth")
	if growth == nil || growth.Values[0] != nil {
		t.Errorf("growth has no value for the current period")
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	doc := testutil.SampleScenario()
	opts := forecast.Options{Currency: "usd"}

	first, err := forecast.Assemble(nil, doc, opts)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	second, err := forecast.Assemble(nil, doc, opts)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("assembling the same snapshot twice produced different forecasts")
	}
	if first.Currency != constants.CurrencyUSD {
		t.Errorf("currency = %q, expected USD", first.Currency)
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"", "", false},
		{"usd", constants.CurrencyUSD, false},
		{" LOCAL ", constants.CurrencyLocal, false},
		{"EUR", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := forecast.ValidateCurrency(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCurrency(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ValidateCurrency(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}

	if _, err := forecast.Assemble(nil, scenario.Default(), forecast.Options{Currency: "GBP"}); err == nil {
		t.Errorf("Assemble should reject an unknown display currency")
	}
}
