package optimizer

import (
	"reflect"
	"testing"

	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/testutil"
	"go.uber.org/zap"
)

func netAt(t *testing.T, doc scenario.Document) float64 {
	t.Helper()
	f, err := forecast.Assemble(nil, doc, forecast.Options{})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	return MinimumNetResult(f)
}

func TestRunnerFindsTuitionBreakEven(t *testing.T) {
	doc := testutil.SampleScenario()
	runner, err := NewRunner(zap.NewNop(), doc, forecast.Options{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	summary, err := runner.Run(TargetTuition, 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.Converged {
		t.Fatalf("expected convergence, notes: %v", summary.Notes)
	}
	if summary.Value <= 0 || summary.Value >= 1 {
		t.Errorf("sample campus is profitable, expected a break-even scale in (0, 1), got %v", summary.Value)
	}
	if summary.Headroom < 0 {
		t.Errorf("chosen scale must meet the floor, headroom %v", summary.Headroom)
	}
	if got := netAt(t, ScaleTuition(doc, summary.Value-1e-3)); got >= 0 {
		t.Errorf("a lower tuition scale should miss the floor, got net %v", got)
	}
	if summary.Target != string(TargetTuition) || summary.Original != 1 || summary.ValueDisplay == "" {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestRunnerFindsOperatingBreakEven(t *testing.T) {
	doc := testutil.SampleScenario()
	runner, err := NewRunner(nil, doc, forecast.Options{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	summary, err := runner.Run(TargetOperating, 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.Converged {
		t.Fatalf("expected convergence, notes: %v", summary.Notes)
	}
	if summary.Value <= 1 {
		t.Errorf("sample campus is profitable, expected room above current spend, got %v", summary.Value)
	}
	if got := netAt(t, ScaleOperating(doc, summary.Value+1e-3)); got >= 0 {
		t.Errorf("a higher operating scale should miss the floor, got net %v", got)
	}
}

func TestRunnerUnreachableFloor(t *testing.T) {
	runner, err := NewRunner(nil, testutil.SampleScenario(), forecast.Options{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	summary, err := runner.Run(TargetOperating, 1e12)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Converged || len(summary.Notes) == 0 || summary.Value != 0 {
		t.Errorf("expected an unconverged summary with a note, got %+v", summary)
	}

	summary, err = runner.Run(TargetTuition, 1e12)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Converged || summary.Value != MaxScale {
		t.Errorf("expected the search to stop at the maximum scale, got %+v", summary)
	}
}

func TestRunnerWithoutTuitionNeed(t *testing.T) {
	doc := testutil.SampleScenario()
	doc.Income.GovernmentIncentives = 1e9

	runner, err := NewRunner(nil, doc, forecast.Options{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	summary, err := runner.Run(TargetTuition, 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.Converged || summary.Value != 0 || len(summary.Notes) != 1 {
		t.Errorf("expected zero tuition scale, got %+v", summary)
	}
}

func TestRunAllKeepsDocument(t *testing.T) {
	doc := testutil.SampleScenario()
	before := doc.Clone()

	runner, err := NewRunner(nil, doc, forecast.Options{})
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	summaries, err := runner.RunAll(0)
	if err != nil {
		t.Fatalf("RunAll() error = %v", err)
	}
	if len(summaries) != len(Targets) {
		t.Errorf("expected %d summaries, got %d", len(Targets), len(summaries))
	}
	if !reflect.DeepEqual(doc, before) {
		t.Errorf("RunAll modified the scenario document")
	}
}

func TestScaleHelpers(t *testing.T) {
	doc := testutil.SampleScenario()

	tuition := ScaleTuition(doc, 2)
	for i, row := range tuition.Income.Tuition {
		if row.UnitFee != doc.Income.Tuition[i].UnitFee*2 {
			t.Errorf("tuition row %s fee = %v", row.Key, row.UnitFee)
		}
	}

	operating := ScaleOperating(doc, 0.5)
	if operating.Expenses.Operating["kira"] != 6000 {
		t.Errorf("kira = %v, expected 6000", operating.Expenses.Operating["kira"])
	}
	if doc.Expenses.Operating["kira"] != 12000 {
		t.Errorf("ScaleOperating modified its input")
	}
}

func TestParseTargetAndValidation(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"tuition", false},
		{"operating", false},
		{"salaries", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseTarget(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTarget(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}

	if _, err := NewRunner(nil, scenario.Default(), forecast.Options{Currency: "EUR"}); err == nil {
		t.Errorf("NewRunner should reject an unknown display currency")
	}
	runner, _ := NewRunner(nil, scenario.Default(), forecast.Options{})
	if _, err := runner.Run(Target("bogus"), 0); err == nil {
		t.Errorf("Run should reject an unknown target")
	}
}
