package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/school-forecast/pkg/constants"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example config",
			configPath: "../../config.yaml.example",
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	path := writeConfig(t, `
scenario: scenarios/ankara.yaml
logging:
  level: debug
  format: console
output:
  format: xlsx
  currency: USD
  file: out/ankara.xlsx
engine:
  localStaffGrowth: Inflation
`)

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Scenario != "scenarios/ankara.yaml" {
		t.Errorf("Expected scenario path, got %q", config.Scenario)
	}
	if config.Logging.Level != "debug" || config.Logging.Format != "console" {
		t.Errorf("Unexpected logging config %+v", config.Logging)
	}
	if config.Output.Format != constants.OutputFormatXLSX {
		t.Errorf("Expected xlsx output, got %q", config.Output.Format)
	}
	if config.Output.Currency != "USD" || config.Output.File != "out/ankara.xlsx" {
		t.Errorf("Unexpected output config %+v", config.Output)
	}
	if config.Engine.LocalStaffGrowth != constants.GrowthInflation {
		t.Errorf("Expected normalized growth rule, got %q", config.Engine.LocalStaffGrowth)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	config, err := LoadConfiguration(writeConfig(t, "logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Expected default output format pretty, got %q", config.Output.Format)
	}
	if config.Logging.Format != "json" {
		t.Errorf("Expected default log format json, got %q", config.Logging.Format)
	}
	if config.Engine.LocalStaffGrowth != constants.GrowthRatio {
		t.Errorf("Expected default growth rule ratio, got %q", config.Engine.LocalStaffGrowth)
	}

	defaults := Defaults()
	if defaults.Output.Format != constants.OutputFormatPretty || defaults.Logging.Level != "info" {
		t.Errorf("Unexpected defaults %+v", defaults)
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("SCHOOL_FORECAST_OUTPUT_FORMAT", "csv")
	t.Setenv("SCHOOL_FORECAST_OUTPUT_CURRENCY", "USD")

	config, err := LoadConfiguration(writeConfig(t, "output:\n  format: pretty\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Expected env override csv, got %q", config.Output.Format)
	}
	if config.Output.Currency != "USD" {
		t.Errorf("Expected env override USD, got %q", config.Output.Currency)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("SCHOOL_FORECAST_TEST_VALUE=from-file\n"), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("SCHOOL_FORECAST_TEST_VALUE", "")
	os.Unsetenv("SCHOOL_FORECAST_TEST_VALUE")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("SCHOOL_FORECAST_TEST_VALUE"); got != "from-file" {
		t.Errorf("Expected value from env file, got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	config := &Configuration{
		Logging: LoggingConfig{Level: "chatty", Format: "json"},
		Output:  OutputConfig{Format: "pdf"},
	}
	err := config.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, fragment := range []string{"chatty", "pdf"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q should mention %q", err.Error(), fragment)
		}
	}
}
