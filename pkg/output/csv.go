package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iwvelando/school-forecast/internal/forecast"
)

// CsvFormat outputs in comma-separated value format, one block per table.
// Every block starts with a header record and blocks are separated by an
// empty line.
func CsvFormat(w io.Writer, f *forecast.Forecast) error {
	writer := csv.NewWriter(w)
	for i, table := range f.Tables {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
		}
		header := append([]string{"table", "key", "label (" + f.Currency + ")"}, table.Columns...)
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		for _, row := range table.Rows {
			record := []string{table.ID, row.Key, row.Label}
			for c := range table.Columns {
				var v *float64
				if c < len(row.Values) {
					v = row.Values[c]
				}
				record = append(record, plain(row.Kind, v))
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("failed to write csv: %w", err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of f.
func CsvString(f *forecast.Forecast) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, f); err != nil {
		return "", err
	}
	return buf.String(), nil
}
