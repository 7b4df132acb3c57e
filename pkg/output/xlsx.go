package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/pkg/format"
	"github.com/xuri/excelize/v2"
)

// Built-in spreadsheet number formats.
const (
	numFmtThousands = 3  // #,##0
	numFmtMoney     = 4  // #,##0.00
	numFmtPercent   = 10 // 0.00%
)

const maxSheetNameLength = 31

// XlsxFormat writes one worksheet per table. Money is rounded to cents; nil
// values are left blank.
func XlsxFormat(w io.Writer, f *forecast.Forecast) error {
	file := excelize.NewFile()
	defer file.Close()

	styles := map[forecast.Kind]int{}
	for kind, numFmt := range map[forecast.Kind]int{
		forecast.KindMoney: numFmtMoney,
		forecast.KindCount: numFmtThousands,
		forecast.KindRatio: numFmtPercent,
	} {
		id, err := file.NewStyle(&excelize.Style{NumFmt: numFmt})
		if err != nil {
			return fmt.Errorf("failed to create spreadsheet style: %w", err)
		}
		styles[kind] = id
	}
	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create spreadsheet style: %w", err)
	}

	first := ""
	for _, table := range f.Tables {
		sheet := sheetName(table)
		index, err := file.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if first == "" {
			first = sheet
			file.SetActiveSheet(index)
		}
		if err := writeSheet(file, sheet, table, f.Currency, styles, bold); err != nil {
			return err
		}
	}
	if first != "" {
		file.DeleteSheet("Sheet1")
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

func writeSheet(file *excelize.File, sheet string, table forecast.Table, currency string, styles map[forecast.Kind]int, bold int) error {
	headers := append([]string{"Key", "Item (" + currency + ")"}, table.Columns...)
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := file.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style sheet %s: %w", sheet, err)
	}

	for r, row := range table.Rows {
		line := r + 2
		if err := file.SetCellValue(sheet, fmt.Sprintf("A%d", line), row.Key); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
		if err := file.SetCellValue(sheet, fmt.Sprintf("B%d", line), row.Label); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
		for c := range table.Columns {
			if c >= len(row.Values) || row.Values[c] == nil {
				continue
			}
			value := *row.Values[c]
			if row.Kind == forecast.KindMoney {
				value = format.RoundMoney(value)
			}
			cell, _ := excelize.CoordinatesToCellName(c+3, line)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
			}
			if err := file.SetCellStyle(sheet, cell, cell, styles[row.Kind]); err != nil {
				return fmt.Errorf("failed to style sheet %s: %w", sheet, err)
			}
		}
	}
	return nil
}

func sheetName(table forecast.Table) string {
	name := table.Title
	if name == "" {
		name = table.ID
	}
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}
	return name
}
