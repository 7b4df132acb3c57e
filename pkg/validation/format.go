// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/school-forecast/pkg/constants"
)

// OutputFormats lists the report formats in the order they are offered.
var OutputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatXLSX,
	constants.OutputFormatJSON,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, supported := range OutputFormats {
		if format == supported {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(OutputFormats, ", "), format)
}

// ValidateExportFormat checks a download format. Exports cover the machine
// readable report formats plus yaml, which returns the scenario document itself.
func ValidateExportFormat(format string) error {
	switch format {
	case constants.OutputFormatCSV, constants.OutputFormatXLSX, constants.OutputFormatJSON, constants.ExportFormatYAML:
		return nil
	}
	return fmt.Errorf("expected export format of csv, xlsx, json or yaml, got %s", format)
}
