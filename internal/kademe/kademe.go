// Package kademe maps grade levels onto configurable education bands
// ("kademe") and aggregates per-grade student rows into per-band totals.
package kademe

import (
	"strconv"
	"strings"

	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// Band identifies an education stage.
type Band string

// Bands in declaration order. Classification scans them in this order.
const (
	OkulOncesi Band = "okulOncesi"
	Ilkokul    Band = "ilkokul"
	Ortaokul   Band = "ortaokul"
	Lise       Band = "lise"
)

// Bands lists every band in declaration order.
var Bands = []Band{OkulOncesi, Ilkokul, Ortaokul, Lise}

// KG is the pre-primary grade token.
const KG = "KG"

// Grades lists every grade token in grade order.
var Grades = []string{KG, "1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"}

// Range is the configuration of one band.
type Range struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
}

// Config maps each band to its grade range.
type Config map[Band]Range

// DefaultConfig returns the fixed default band layout: KG, 1-4, 5-8, 9-12.
func DefaultConfig() Config {
	return Config{
		OkulOncesi: {Enabled: true, From: KG, To: KG},
		Ilkokul:    {Enabled: true, From: "1", To: "4"},
		Ortaokul:   {Enabled: true, From: "5", To: "8"},
		Lise:       {Enabled: true, From: "9", To: "12"},
	}
}

// IsBand reports whether name is a known band key.
func IsBand(name string) bool {
	for _, b := range Bands {
		if string(b) == name {
			return true
		}
	}
	return false
}

// NormalizeGrade canonicalizes a grade token. It accepts "KG" in any case and
// the integers 1 through 12, and reports false for anything else.
func NormalizeGrade(grade string) (string, bool) {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if g == KG {
		return KG, true
	}
	n, err := strconv.Atoi(g)
	if err != nil || n < 1 || n > 12 {
		return "", false
	}
	return strconv.Itoa(n), true
}

// GradeIndex returns the position of grade in grade order (KG is 0), or -1.
func GradeIndex(grade string) int {
	g, ok := NormalizeGrade(grade)
	if !ok {
		return -1
	}
	if g == KG {
		return 0
	}
	n, _ := strconv.Atoi(g)
	return n
}

// Normalize returns a config where every band is present and well formed.
// Entries with unparsable grades or from > to fall back to the band default;
// the enabled flag of such entries is kept.
func (c Config) Normalize() Config {
	defaults := DefaultConfig()
	out := make(Config, len(Bands))
	for _, band := range Bands {
		r, ok := c[band]
		if !ok {
			out[band] = defaults[band]
			continue
		}
		from, fromOK := NormalizeGrade(r.From)
		to, toOK := NormalizeGrade(r.To)
		if !fromOK || !toOK || GradeIndex(from) > GradeIndex(to) {
			d := defaults[band]
			d.Enabled = r.Enabled
			out[band] = d
			continue
		}
		out[band] = Range{Enabled: r.Enabled, From: from, To: to}
	}
	return out
}

// Clone returns an independent copy.
func (c Config) Clone() Config {
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Classify returns the first enabled band whose inclusive range contains grade.
func Classify(grade string, config Config) (Band, bool) {
	idx := GradeIndex(grade)
	if idx < 0 {
		return "", false
	}
	for _, band := range Bands {
		r, ok := config[band]
		if !ok || !r.Enabled {
			continue
		}
		from, to := GradeIndex(r.From), GradeIndex(r.To)
		if from < 0 || to < 0 {
			continue
		}
		if idx >= from && idx <= to {
			return band, true
		}
	}
	return "", false
}

// GradesOf lists the grades assigned to band, in grade order. A disabled band
// has no grades.
func GradesOf(band Band, config Config) []string {
	var out []string
	for _, g := range Grades {
		if b, ok := Classify(g, config); ok && b == band {
			out = append(out, g)
		}
	}
	return out
}

// EnabledBands lists the enabled bands in declaration order.
func EnabledBands(config Config) []Band {
	var out []Band
	for _, band := range Bands {
		if config[band].Enabled {
			out = append(out, band)
		}
	}
	return out
}

// GradeRow is one grade's planning data. TotalStudents is the total for the
// grade across all of its branches.
type GradeRow struct {
	Grade         string  `json:"grade" yaml:"grade"`
	BranchCount   float64 `json:"branchCount" yaml:"branchCount"`
	TotalStudents float64 `json:"totalStudents" yaml:"totalStudents"`
}

// Totals is the per-band aggregation of grade rows.
type Totals struct {
	Students map[Band]float64 `json:"students"`
	Branches map[Band]float64 `json:"branches"`
	Total    float64          `json:"total"`
	Branch   float64          `json:"branchTotal"`
}

// Aggregate sums students and branches per band plus grand totals. Rows whose
// grade cannot be classified are skipped.
func Aggregate(rows []GradeRow, config Config) Totals {
	t := Totals{
		Students: make(map[Band]float64, len(Bands)),
		Branches: make(map[Band]float64, len(Bands)),
	}
	for _, band := range Bands {
		t.Students[band] = 0
		t.Branches[band] = 0
	}
	for _, row := range rows {
		band, ok := Classify(row.Grade, config)
		if !ok {
			continue
		}
		students := mathutil.NonNegative(row.TotalStudents)
		branches := mathutil.NonNegative(row.BranchCount)
		t.Students[band] += students
		t.Branches[band] += branches
		t.Total += students
		t.Branch += branches
	}
	return t
}
