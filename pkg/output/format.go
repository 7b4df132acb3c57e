// Package output provides utilities for formatting and displaying forecast results.
// Writers only lay out what the forecast tables hold; they do no arithmetic.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders f to w in the named output format.
func Write(w io.Writer, f *forecast.Forecast, outputFormat string) error {
	if f == nil {
		return fmt.Errorf("no forecast to write")
	}
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, f)
	case constants.OutputFormatCSV:
		return CsvFormat(w, f)
	case constants.OutputFormatXLSX:
		return XlsxFormat(w, f)
	case constants.OutputFormatJSON:
		return JSONFormat(w, f)
	}
	return fmt.Errorf("unsupported output format %s", outputFormat)
}

// ContentType returns the MIME type of an output format.
func ContentType(outputFormat string) string {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return "text/csv; charset=utf-8"
	case constants.OutputFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case constants.OutputFormatJSON:
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}

// FileName returns a download file name for a forecast.
func FileName(f *forecast.Forecast, outputFormat string) string {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, f.Name)
	if base == "" {
		base = "forecast"
	}
	ext := outputFormat
	if outputFormat == constants.OutputFormatPretty {
		ext = "txt"
	}
	return base + "." + ext
}

// Cell renders one value for people. Nil renders as format.NotApplicable.
func Cell(kind forecast.Kind, value *float64, currency string) string {
	if value == nil {
		return format.NotApplicable
	}
	switch kind {
	case forecast.KindMoney:
		return format.Currency(*value, currency)
	case forecast.KindRatio:
		return format.Percent(value)
	}
	return format.Count(*value)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, f *forecast.Forecast) error {
	p := message.NewPrinter(language.English)
	if _, err := p.Fprintf(w, "--- Results for scenario %s (%s) ---\n", displayName(f), f.Currency); err != nil {
		return err
	}

	for _, table := range f.Tables {
		labelWidth := len("Item")
		for _, row := range table.Rows {
			if n := len([]rune(row.Label)); n > labelWidth {
				labelWidth = n
			}
		}
		cells := make([][]string, len(table.Rows))
		widths := make([]int, len(table.Columns))
		for i, col := range table.Columns {
			widths[i] = len(col)
		}
		for r, row := range table.Rows {
			cells[r] = make([]string, len(table.Columns))
			for i := range table.Columns {
				var v *float64
				if i < len(row.Values) {
					v = row.Values[i]
				}
				cells[r][i] = Cell(row.Kind, v, f.Currency)
				if n := len([]rune(cells[r][i])); n > widths[i] {
					widths[i] = n
				}
			}
		}

		_, _ = p.Fprintf(w, "\n%s\n", table.Title)
		_, _ = p.Fprintf(w, "%s", padRight("Item", labelWidth))
		for i, col := range table.Columns {
			_, _ = p.Fprintf(w, " | %s", padLeft(col, widths[i]))
		}
		_, _ = p.Fprintf(w, "\n%s", strings.Repeat("_", labelWidth))
		for i := range table.Columns {
			_, _ = p.Fprintf(w, " | %s", strings.Repeat("_", widths[i]))
		}
		_, _ = p.Fprintf(w, "\n")
		for r, row := range table.Rows {
			_, _ = p.Fprintf(w, "%s", padRight(row.Label, labelWidth))
			for i := range table.Columns {
				_, _ = p.Fprintf(w, " | %s", padLeft(cells[r][i], widths[i]))
			}
			if _, err := p.Fprintf(w, "\n"); err != nil {
				return err
			}
		}
	}

	if len(f.Warnings) > 0 {
		_, _ = p.Fprintf(w, "\nWarnings\n")
		for _, warning := range f.Warnings {
			if _, err := p.Fprintf(w, "- %s\n", warning); err != nil {
				return err
			}
		}
	}
	return nil
}

// JSONFormat outputs the forecast tables, warnings and projection as JSON.
func JSONFormat(w io.Writer, f *forecast.Forecast) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(f); err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	return nil
}

// plain renders a value for machine-readable formats: money to cents, ratios
// to four decimals, counts as they are. Nil is empty.
func plain(kind forecast.Kind, value *float64) string {
	if value == nil {
		return ""
	}
	switch kind {
	case forecast.KindMoney:
		return format.Fixed(*value, constants.DecimalPlaces)
	case forecast.KindRatio:
		return format.Fixed(*value, 4)
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func displayName(f *forecast.Forecast) string {
	if f.Name == "" {
		return "(unnamed)"
	}
	if f.AcademicYear != "" {
		return f.Name + " " + f.AcademicYear
	}
	return f.Name
}

func padRight(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
