// Package engine computes the three-year financial projection of a school
// scenario: inflation, currency conversion, student cohorts, income,
// discounts, HR costs, expenses and capacity.
//
// Every computation is a pure function of a normalized scenario.Document and
// the engine options. Nothing is cached; computing the same document twice
// yields the same Projection.
package engine

import (
	"strings"

	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/mathutil"
	"go.uber.org/zap"
)

// Options are the externally injected engine settings.
type Options struct {
	// LocalStaffGrowth selects how local staff unit costs grow after Y1:
	// constants.GrowthRatio (default) or constants.GrowthInflation.
	LocalStaffGrowth string `mapstructure:"localStaffGrowth" json:"localStaffGrowth" yaml:"localStaffGrowth"`
}

// Normalize returns options with defaults applied.
func (o Options) Normalize() Options {
	if strings.EqualFold(strings.TrimSpace(o.LocalStaffGrowth), constants.GrowthInflation) {
		o.LocalStaffGrowth = constants.GrowthInflation
	} else {
		o.LocalStaffGrowth = constants.GrowthRatio
	}
	return o
}

// Summary holds the bottom-line figures of each year.
type Summary struct {
	Students          [3]float64  `json:"students"`
	NetRevenue        [3]float64  `json:"netRevenue"`
	TotalExpenses     [3]float64  `json:"totalExpenses"`
	NetResult         [3]float64  `json:"netResult"`
	Margin            [3]*float64 `json:"margin"`
	RevenuePerStudent [3]*float64 `json:"revenuePerStudent"`
	CostPerStudent    [3]*float64 `json:"costPerStudent"`
}

// Projection is the complete output of one computation.
type Projection struct {
	// Currency is the currency every amount is expressed in after conversion.
	Currency     string    `json:"currency"`
	CurrencyCode string    `json:"currencyCode"`
	Factors      Factors   `json:"factors"`
	Cohort       Cohort    `json:"cohort"`
	Income       Income    `json:"income"`
	Discounts    Discounts `json:"discounts"`
	HR           HRCosts   `json:"hr"`
	Expenses     Expenses  `json:"expenses"`
	Capacity     Capacity  `json:"capacity"`
	Summary      Summary   `json:"summary"`
}

// Engine runs projections.
type Engine struct {
	logger  *zap.Logger
	options Options
}

// NewEngine creates an engine with the given logger and options.
// If logger is nil, it will use a no-op logger to prevent panics.
func NewEngine(logger *zap.Logger, options Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger, options: options.Normalize()}
}

// Options returns the effective options.
func (e *Engine) Options() Options {
	return e.options
}

// Compute projects doc in displayCurrency ("LOCAL", "USD", or empty for the
// entry currency). doc must already be normalized.
func (e *Engine) Compute(doc scenario.Document, displayCurrency string) Projection {
	display := effectiveDisplay(doc.Currency.Entry, displayCurrency, doc.Currency.FXRate)
	conv := func(amount float64) float64 {
		return ToDisplay(amount, doc.Currency.Entry, display, doc.Currency.FXRate)
	}

	p := Projection{
		Currency:     display,
		CurrencyCode: currencyCode(display, doc.Currency.LocalCode),
		Factors:      InflationFactors(doc.Inflation.Y2, doc.Inflation.Y3),
		Cohort:       AggregateCohort(doc),
	}
	p.Income = ProjectIncome(doc, p.Cohort, p.Factors, conv)
	p.Discounts = ApplyDiscounts(doc.Discounts, p.Income, p.Factors, conv)
	p.HR = AllocateHR(doc.HR, p.Factors, e.options.LocalStaffGrowth, conv)
	p.Expenses = ProjectExpenses(doc, p.Income, p.HR, p.Discounts.NetTotalIncome, p.Factors, conv)
	p.Capacity = ProjectCapacity(doc, p.Cohort)
	p.Summary = summarize(p)

	e.logger.Debug("computed projection",
		zap.String("op", "engine.Compute"),
		zap.String("scenario", doc.Name),
		zap.String("currency", p.CurrencyCode),
		zap.Float64s("netRevenue", p.Summary.NetRevenue[:]),
		zap.Float64s("totalExpenses", p.Summary.TotalExpenses[:]),
	)
	return p
}

func summarize(p Projection) Summary {
	var s Summary
	for _, y := range scenario.Years {
		s.Students[y] = p.Cohort.Year(y).Total
		s.NetRevenue[y] = p.Discounts.NetTotalIncome[y]
		s.TotalExpenses[y] = p.Expenses.Total[y]
		s.NetResult[y] = s.NetRevenue[y] - s.TotalExpenses[y]
		s.Margin[y] = mathutil.SafeDiv(s.NetResult[y], s.NetRevenue[y])
		s.RevenuePerStudent[y] = mathutil.SafeDiv(s.NetRevenue[y], s.Students[y])
		s.CostPerStudent[y] = mathutil.SafeDiv(s.TotalExpenses[y], s.Students[y])
	}
	return s
}

func currencyCode(display, localCode string) string {
	if display == constants.CurrencyUSD {
		return constants.CurrencyUSD
	}
	if localCode == "" {
		return constants.DefaultLocalCurrencyCode
	}
	return localCode
}
