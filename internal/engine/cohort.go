package engine

import (
	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/internal/scenario"
)

// Cohort holds per-band student and branch totals for the current period and
// each projected year.
type Cohort struct {
	Periods [4]kademe.Totals `json:"periods"`
}

// AggregateCohort classifies every grade row of the document into its band.
func AggregateCohort(doc scenario.Document) Cohort {
	var c Cohort
	c.Periods[scenario.Current] = kademe.Aggregate(doc.Grades.Current, doc.Kademe)
	for _, y := range scenario.Years {
		c.Periods[periodOf(y)] = kademe.Aggregate(doc.Grades.Planning.Year(y), doc.Kademe)
	}
	return c
}

// Period returns the totals of period p.
func (c Cohort) Period(p scenario.Period) kademe.Totals {
	return c.Periods[p]
}

// Year returns the totals of projected year y.
func (c Cohort) Year(y scenario.Year) kademe.Totals {
	return c.Periods[periodOf(y)]
}

func periodOf(y scenario.Year) scenario.Period {
	return scenario.Period(int(y) + 1)
}
