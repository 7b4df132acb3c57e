package engine

import (
	"github.com/iwvelando/school-forecast/internal/kademe"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
)

// CapacityLine holds students, seats and utilization of one band (or of the
// whole school) for the current period and Y1..Y3. Delta and Growth compare
// each year with the period before it, the current period preceding Y1.
type CapacityLine struct {
	Band        kademe.Band `json:"band,omitempty"`
	Enabled     bool        `json:"enabled"`
	Students    [4]float64  `json:"students"`
	Capacity    [4]float64  `json:"capacity"`
	Utilization [4]*float64 `json:"utilization"`
	Delta       [3]float64  `json:"delta"`
	Growth      [3]*float64 `json:"growth"`
}

// Capacity is the per-band capacity projection plus its totals.
type Capacity struct {
	Bands []CapacityLine `json:"bands"`
	Total CapacityLine   `json:"total"`
}

// ProjectCapacity derives utilization and growth. Totals are sums of the band
// values and are never entered.
func ProjectCapacity(doc scenario.Document, cohort Cohort) Capacity {
	out := Capacity{
		Bands: make([]CapacityLine, 0, len(kademe.Bands)),
		Total: CapacityLine{Enabled: true},
	}
	for _, band := range kademe.Bands {
		line := CapacityLine{Band: band, Enabled: doc.Kademe[band].Enabled}
		for _, p := range scenario.Periods {
			line.Students[p] = cohort.Period(p).Students[band]
			line.Capacity[p] = mathutil.NonNegative(doc.Capacity[band].Caps.Get(p))
			out.Total.Students[p] += line.Students[p]
			out.Total.Capacity[p] += line.Capacity[p]
		}
		line.derive()
		out.Bands = append(out.Bands, line)
	}
	out.Total.derive()
	return out
}

func (l *CapacityLine) derive() {
	for _, p := range scenario.Periods {
		if l.Capacity[p] > 0 {
			l.Utilization[p] = mathutil.SafeDiv(l.Students[p], l.Capacity[p])
		}
	}
	for _, y := range scenario.Years {
		prev := l.Students[y]
		l.Delta[y] = l.Students[periodOf(y)] - prev
		if prev > 0 {
			l.Growth[y] = mathutil.SafeDiv(l.Delta[y], prev)
		}
	}
}
