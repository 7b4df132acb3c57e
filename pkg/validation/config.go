// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/school-forecast/pkg/constants"
	"go.uber.org/zap/zapcore"
)

// ValidateLogLevel accepts the zap level names (debug, info, warn, error, ...).
// An empty level is allowed and means the default.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}

// ValidateLogFormat accepts json or console. Empty means json.
func ValidateLogFormat(format string) error {
	switch format {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("expected log format of json or console, got %s", format)
}

// ValidateGrowthRule checks the HR growth rule. Empty means the ratio rule.
func ValidateGrowthRule(rule string) error {
	switch rule {
	case "", constants.GrowthRatio, constants.GrowthInflation:
		return nil
	}
	return fmt.Errorf("expected local staff growth of %s or %s, got %s",
		constants.GrowthRatio, constants.GrowthInflation, rule)
}

// ConfigValues collects the settings checked by ValidateAll.
type ConfigValues struct {
	LogLevel         string
	LogFormat        string
	OutputFormat     string
	LocalStaffGrowth string
}

// ValidateAll checks every value and returns all problems found, in order.
// An empty OutputFormat is skipped since callers apply their default first.
func (v ConfigValues) ValidateAll() []error {
	var errs []error
	if err := ValidateLogLevel(v.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateLogFormat(v.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if v.OutputFormat != "" {
		if err := ValidateOutputFormat(v.OutputFormat); err != nil {
			errs = append(errs, err)
		}
	}
	if err := ValidateGrowthRule(v.LocalStaffGrowth); err != nil {
		errs = append(errs, err)
	}
	return errs
}
