package kademe

import (
	"math"
	"testing"
)

func TestNormalizeGrade(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"Kindergarten", "KG", "KG", true},
		{"Lowercase kindergarten", " kg ", "KG", true},
		{"First grade", "1", "1", true},
		{"Leading zero", "05", "5", true},
		{"Twelfth grade", "12", "12", true},
		{"Zero is not a grade", "0", "", false},
		{"Thirteen", "13", "", false},
		{"Garbage", "first", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeGrade(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeGrade(%q) = (%q, %v), expected (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyDefaults(t *testing.T) {
	config := DefaultConfig()
	tests := []struct {
		grade string
		band  Band
	}{
		{"KG", OkulOncesi},
		{"1", Ilkokul},
		{"4", Ilkokul},
		{"5", Ortaokul},
		{"8", Ortaokul},
		{"9", Lise},
		{"12", Lise},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			band, ok := Classify(tt.grade, config)
			if !ok || band != tt.band {
				t.Errorf("Classify(%q) = (%q, %v), expected %q", tt.grade, band, ok, tt.band)
			}
		})
	}
}

func TestClassifySkipsDisabledBands(t *testing.T) {
	config := DefaultConfig()
	r := config[Lise]
	r.Enabled = false
	config[Lise] = r

	if band, ok := Classify("10", config); ok {
		t.Errorf("expected grade 10 to be unclassified, got %q", band)
	}
	if got := GradesOf(Lise, config); len(got) != 0 {
		t.Errorf("expected no grades for a disabled band, got %v", got)
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	config := DefaultConfig()
	config[Ilkokul] = Range{Enabled: true, From: "1", To: "6"}

	band, ok := Classify("5", config)
	if !ok || band != Ilkokul {
		t.Errorf("expected overlapping grade to land in the first declared band, got %q", band)
	}
}

func TestConfigNormalizeFallsBack(t *testing.T) {
	config := Config{
		Ilkokul:  {Enabled: true, From: "4", To: "1"},
		Ortaokul: {Enabled: false, From: "x", To: "8"},
		Lise:     {Enabled: true, From: "9", To: "11"},
	}

	normalized := config.Normalize()
	defaults := DefaultConfig()

	if normalized[OkulOncesi] != defaults[OkulOncesi] {
		t.Errorf("missing band should take defaults, got %+v", normalized[OkulOncesi])
	}
	if normalized[Ilkokul] != defaults[Ilkokul] {
		t.Errorf("reversed range should take defaults, got %+v", normalized[Ilkokul])
	}
	if normalized[Ortaokul].Enabled || normalized[Ortaokul].From != "5" {
		t.Errorf("malformed range should keep enabled flag and default bounds, got %+v", normalized[Ortaokul])
	}
	if normalized[Lise].To != "11" {
		t.Errorf("valid range should survive, got %+v", normalized[Lise])
	}
}

func TestAggregate(t *testing.T) {
	rows := []GradeRow{
		{Grade: "KG", BranchCount: 2, TotalStudents: 30},
		{Grade: "1", BranchCount: 1, TotalStudents: 20},
		{Grade: "3", BranchCount: 1, TotalStudents: 22},
		{Grade: "7", BranchCount: 1, TotalStudents: 18},
		{Grade: "10", BranchCount: 1, TotalStudents: -5},
		{Grade: "Z", BranchCount: 9, TotalStudents: 99},
		{Grade: "11", BranchCount: 1, TotalStudents: math.NaN()},
	}

	totals := Aggregate(rows, DefaultConfig())

	expected := map[Band]float64{OkulOncesi: 30, Ilkokul: 42, Ortaokul: 18, Lise: 0}
	sum := 0.0
	for band, want := range expected {
		if totals.Students[band] != want {
			t.Errorf("students[%s] = %v, expected %v", band, totals.Students[band], want)
		}
		sum += totals.Students[band]
	}
	if totals.Total != 90 || sum != totals.Total {
		t.Errorf("total = %v, band sum = %v, expected 90", totals.Total, sum)
	}
	if totals.Branch != 7 {
		t.Errorf("branch total = %v, expected 7", totals.Branch)
	}
}
