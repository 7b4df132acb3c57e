// Package forecast defines the report model of a scenario and assembles it
// from the engine projection. Assemble is the only place the engine is run
// for display or export, so every consumer sees the same figures.
package forecast

import (
	"fmt"
	"strings"

	"github.com/iwvelando/school-forecast/internal/engine"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"go.uber.org/zap"
)

// Kind tells renderers how to format a row.
type Kind string

// Row kinds.
const (
	KindMoney Kind = "money"
	KindCount Kind = "count"
	KindRatio Kind = "ratio"
)

// Row is one labelled line of a table. A nil value is "not applicable".
type Row struct {
	Key    string     `json:"key"`
	Label  string     `json:"label"`
	Kind   Kind       `json:"kind"`
	Total  bool       `json:"total,omitempty"`
	Values []*float64 `json:"values"`
}

// Table is an ordered block of rows sharing the same columns.
type Table struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	Name         string            `json:"name"`
	AcademicYear string            `json:"academicYear"`
	Currency     string            `json:"currency"`
	Tables       []Table           `json:"tables"`
	Warnings     []string          `json:"warnings"`
	Projection   engine.Projection `json:"projection"`
}

// Options select the display currency and the engine settings.
type Options struct {
	Currency string         `mapstructure:"currency" json:"currency" yaml:"currency"`
	Engine   engine.Options `mapstructure:"engine" json:"engine" yaml:"engine"`
}

// Table returns the table with id.
func (f *Forecast) Table(id string) (Table, bool) {
	for _, t := range f.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

// Row returns the row with key.
func (t Table) Row(key string) (Row, bool) {
	for _, r := range t.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// ValidateCurrency checks a display currency option. Empty means the entry
// currency of the scenario.
func ValidateCurrency(currency string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(currency))
	switch c {
	case "", constants.CurrencyLocal, constants.CurrencyUSD:
		return c, nil
	}
	return "", fmt.Errorf("invalid display currency '%s'. Valid currencies are: %s, %s", currency, constants.CurrencyLocal, constants.CurrencyUSD)
}

// Assemble computes the projection of doc and lays it out as report tables.
// doc must be normalized. No figure is computed here beyond what the engine
// returns.
func Assemble(logger *zap.Logger, doc scenario.Document, opts Options) (*Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	currency, err := ValidateCurrency(opts.Currency)
	if err != nil {
		return nil, err
	}

	p := engine.NewEngine(logger, opts.Engine).Compute(doc, currency)
	f := &Forecast{
		Name:         doc.Name,
		AcademicYear: doc.AcademicYear,
		Currency:     p.CurrencyCode,
		Warnings:     doc.Warnings(),
		Projection:   p,
	}
	if f.Warnings == nil {
		f.Warnings = []string{}
	}
	f.Tables = []Table{
		studentsTable(doc, p),
		incomeTable(p),
		discountsTable(p),
		hrTable(p),
		expensesTable(p),
		expenseSharesTable(p),
		capacityTable(p),
		summaryTable(p),
	}

	logger.Debug(fmt.Sprintf("assembled forecast for scenario %s", doc.Name),
		zap.String("op", "forecast.Assemble"),
		zap.Int("tables", len(f.Tables)),
		zap.Int("warnings", len(f.Warnings)),
	)
	return f, nil
}
