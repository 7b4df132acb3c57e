// Package optimizer searches for break-even levers of a scenario: the lowest
// tuition level, or the highest operating spend, at which the net result of
// every projected year stays at or above a floor.
//
// Each probe is a full forecast.Assemble run on a scaled copy of the scenario,
// so the solver sees exactly the figures the report shows.
package optimizer

import (
	"fmt"

	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/format"
	"github.com/iwvelando/school-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// Target names the lever being searched.
type Target string

const (
	// TargetTuition scales every tuition unit fee; the search finds the lowest scale.
	TargetTuition Target = "tuition"
	// TargetOperating scales every editable operating expense; the search finds the highest scale.
	TargetOperating Target = "operating"
)

const (
	// MaxScale bounds the search range of both levers.
	MaxScale      = 64.0
	maxIterations = 60
	tolerance     = 1e-6
)

// Targets lists the supported levers.
var Targets = []Target{TargetTuition, TargetOperating}

// ParseTarget returns the Target named by s.
func ParseTarget(s string) (Target, error) {
	for _, t := range Targets {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown break-even target %q, expected tuition or operating", s)
}

// Runner evaluates one scenario snapshot.
type Runner struct {
	logger *zap.Logger
	doc    scenario.Document
	opts   forecast.Options
}

type evaluation struct {
	scale   float64
	minimum float64
	floor   float64
}

func (e evaluation) feasible() bool {
	return e.minimum >= e.floor
}

func (e evaluation) headroom() float64 {
	return e.minimum - e.floor
}

// NewRunner constructs a Runner for doc. The display currency in opts also
// sets the currency of the floor.
func NewRunner(logger *zap.Logger, doc scenario.Document, opts forecast.Options) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := forecast.ValidateCurrency(opts.Currency); err != nil {
		return nil, err
	}
	return &Runner{logger: logger, doc: doc, opts: opts}, nil
}

// Run searches target against floor. It never modifies the runner's document.
func (r *Runner) Run(target Target, floor float64) (optimization.Summary, error) {
	var summary optimization.Summary
	var err error
	switch target {
	case TargetTuition:
		summary, err = r.solveTuition(floor)
	case TargetOperating:
		summary, err = r.solveOperating(floor)
	default:
		return optimization.Summary{}, fmt.Errorf("unknown break-even target %q", target)
	}
	if err != nil {
		return optimization.Summary{}, err
	}

	r.logger.Info("break-even search finished",
		zap.String("op", "optimizer.Run"),
		zap.String("scenario", r.doc.Name),
		zap.String("target", summary.Target),
		zap.Float64("value", summary.Value),
		zap.Float64("floor", summary.Floor),
		zap.Float64("minimumNetResult", summary.MinimumNetResult),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
	return summary, nil
}

// RunAll runs every target in Targets order.
func (r *Runner) RunAll(floor float64) ([]optimization.Summary, error) {
	summaries := make([]optimization.Summary, 0, len(Targets))
	for _, target := range Targets {
		summary, err := r.Run(target, floor)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Net result rises with the tuition scale, so the lowest feasible scale is
// searched between an infeasible lower and a feasible upper bound.
func (r *Runner) solveTuition(floor float64) (optimization.Summary, error) {
	summary := newSummary(TargetTuition, "income.tuition.*.unitFee", floor)

	lower, err := r.evaluate(TargetTuition, 0, floor)
	if err != nil {
		return summary, err
	}
	if lower.feasible() {
		summary.Notes = append(summary.Notes, "net result meets the floor without any tuition")
		return finish(summary, lower, 0, true), nil
	}

	upper, err := r.evaluate(TargetTuition, 1, floor)
	if err != nil {
		return summary, err
	}
	for !upper.feasible() && upper.scale < MaxScale {
		if upper, err = r.evaluate(TargetTuition, upper.scale*2, floor); err != nil {
			return summary, err
		}
	}
	if !upper.feasible() {
		summary.Notes = append(summary.Notes, fmt.Sprintf("unable to reach net result %s with tuition up to x%s", format.NumericCurrency(floor), format.Fixed(MaxScale, 0)))
		return finish(summary, upper, 0, false), nil
	}

	iterations := 0
	for iterations < maxIterations && upper.scale-lower.scale > tolerance {
		iterations++
		mid, err := r.evaluate(TargetTuition, (lower.scale+upper.scale)/2, floor)
		if err != nil {
			return summary, err
		}
		if mid.feasible() {
			upper = mid
		} else {
			lower = mid
		}
	}
	return finish(summary, upper, iterations, true), nil
}

// Net result falls as operating spend rises, so the highest feasible scale is
// searched between a feasible lower and an infeasible upper bound.
func (r *Runner) solveOperating(floor float64) (optimization.Summary, error) {
	summary := newSummary(TargetOperating, "expenses.operating.*", floor)

	lower, err := r.evaluate(TargetOperating, 0, floor)
	if err != nil {
		return summary, err
	}
	if !lower.feasible() {
		summary.Notes = append(summary.Notes, "net result misses the floor even without operating expenses")
		return finish(summary, lower, 0, false), nil
	}

	upper, err := r.evaluate(TargetOperating, MaxScale, floor)
	if err != nil {
		return summary, err
	}
	if upper.feasible() {
		summary.Notes = append(summary.Notes, fmt.Sprintf("net result holds the floor with operating expenses up to x%s", format.Fixed(MaxScale, 0)))
		return finish(summary, upper, 0, true), nil
	}

	iterations := 0
	for iterations < maxIterations && upper.scale-lower.scale > tolerance {
		iterations++
		mid, err := r.evaluate(TargetOperating, (lower.scale+upper.scale)/2, floor)
		if err != nil {
			return summary, err
		}
		if mid.feasible() {
			lower = mid
		} else {
			upper = mid
		}
	}
	return finish(summary, lower, iterations, true), nil
}

func (r *Runner) evaluate(target Target, scale, floor float64) (evaluation, error) {
	var doc scenario.Document
	if target == TargetTuition {
		doc = ScaleTuition(r.doc, scale)
	} else {
		doc = ScaleOperating(r.doc, scale)
	}
	f, err := forecast.Assemble(r.logger, doc, r.opts)
	if err != nil {
		return evaluation{}, fmt.Errorf("break-even forecast failed: %w", err)
	}
	return evaluation{scale: scale, minimum: MinimumNetResult(f), floor: floor}, nil
}

// MinimumNetResult returns the lowest yearly net result of a forecast.
func MinimumNetResult(f *forecast.Forecast) float64 {
	net := f.Projection.Summary.NetResult
	minimum := net[0]
	for _, v := range net[1:] {
		if v < minimum {
			minimum = v
		}
	}
	return minimum
}

// ScaleTuition returns a copy of doc with every tuition unit fee multiplied by scale.
func ScaleTuition(doc scenario.Document, scale float64) scenario.Document {
	next := doc.Clone()
	for i := range next.Income.Tuition {
		next.Income.Tuition[i].UnitFee *= scale
	}
	return next
}

// ScaleOperating returns a copy of doc with every editable operating expense
// multiplied by scale. HR-derived rows are untouched.
func ScaleOperating(doc scenario.Document, scale float64) scenario.Document {
	next := doc.Clone()
	for key, amount := range next.Expenses.Operating {
		if !scenario.IsHRDerived(key) {
			next.Expenses.Operating[key] = amount * scale
		}
	}
	return next
}

func newSummary(target Target, field string, floor float64) optimization.Summary {
	return optimization.Summary{
		Target:          string(target),
		Field:           field,
		Original:        1,
		OriginalDisplay: scaleDisplay(1),
		Floor:           floor,
	}
}

func finish(summary optimization.Summary, e evaluation, iterations int, converged bool) optimization.Summary {
	summary.Value = e.scale
	summary.ValueDisplay = scaleDisplay(e.scale)
	summary.MinimumNetResult = e.minimum
	summary.Headroom = e.headroom()
	summary.Iterations = iterations
	summary.Converged = converged
	return summary
}

func scaleDisplay(scale float64) string {
	return "x" + format.Fixed(scale, 4)
}
