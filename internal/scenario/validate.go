package scenario

import (
	"fmt"

	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/pkg/constants"
)

// Warnings reports data-quality observations about a normalized document.
// None of them stop a projection; they are shown next to the results.
func (d Document) Warnings() []string {
	var warnings []string

	if d.Currency.FXRate <= 0 {
		warnings = append(warnings, "FX rate is not set; amounts are shown in the entry currency regardless of the display currency")
	}

	if d.Inflation.Y2 <= -1 {
		warnings = append(warnings, fmt.Sprintf("Y2 inflation rate %.2f%% yields a non-positive inflation factor", d.Inflation.Y2*constants.PercentageMultiplier))
	}
	if d.Inflation.Y3 <= -1 {
		warnings = append(warnings, fmt.Sprintf("Y3 inflation rate %.2f%% yields a non-positive inflation factor", d.Inflation.Y3*constants.PercentageMultiplier))
	}

	warnings = append(warnings, unclassifiedGrades("current grades", d.Grades.Current, d.Kademe)...)
	for _, y := range Years {
		warnings = append(warnings, unclassifiedGrades(y.Label()+" planning", d.Grades.Planning.Year(y), d.Kademe)...)
	}

	for _, row := range d.Income.Tuition {
		if row.UnitFee == 0 {
			continue
		}
		band, program, _ := ParseTuitionKey(row.Key)
		if program != d.ProgramType {
			warnings = append(warnings, fmt.Sprintf("Tuition row '%s' has a fee but the program type is %s; it contributes nothing", row.Key, d.ProgramType))
		} else if !d.Kademe[band].Enabled {
			warnings = append(warnings, fmt.Sprintf("Tuition row '%s' has a fee but band '%s' is disabled; it contributes nothing", row.Key, band))
		}
	}

	warnings = append(warnings, d.overCapacity()...)
	return warnings
}

func unclassifiedGrades(where string, rows []kademe.GradeRow, config kademe.Config) []string {
	var warnings []string
	for _, row := range rows {
		if row.TotalStudents == 0 {
			continue
		}
		if _, ok := kademe.Classify(row.Grade, config); !ok {
			warnings = append(warnings, fmt.Sprintf("Grade %s in %s belongs to no enabled band; its %.0f students are ignored", row.Grade, where, row.TotalStudents))
		}
	}
	return warnings
}

func (d Document) overCapacity() []string {
	var warnings []string
	sequences := map[Period][]kademe.GradeRow{
		Current:  d.Grades.Current,
		PeriodY1: d.Grades.Planning.Y1,
		PeriodY2: d.Grades.Planning.Y2,
		PeriodY3: d.Grades.Planning.Y3,
	}
	for _, p := range Periods {
		totals := kademe.Aggregate(sequences[p], d.Kademe)
		for _, band := range kademe.EnabledBands(d.Kademe) {
			capacity := d.Capacity[band].Caps.Get(p)
			students := totals.Students[band]
			if capacity > 0 && students > capacity {
				warnings = append(warnings, fmt.Sprintf("%s enrollment %.0f exceeds capacity %.0f in %s", Label(string(band)), students, capacity, p.Label()))
			}
		}
	}
	return warnings
}
