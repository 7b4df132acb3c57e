// Package config defines the application configuration for the school-forecast
// command line tool and loads it with viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/iwvelando/school-forecast/internal/engine"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for school-forecast.
type Configuration struct {
	// Scenario is the default scenario document path; the -scenario flag overrides it.
	Scenario string         `yaml:"scenario,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Engine   engine.Options `yaml:"engine,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv, xlsx, json
	Currency string `yaml:"currency,omitempty"` // LOCAL, USD; empty keeps the entry currency
	File     string `yaml:"file,omitempty"`     // optional output path, stdout otherwise
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Values can be overridden through SCHOOL_FORECAST_*
// environment variables, e.g. SCHOOL_FORECAST_OUTPUT_FORMAT=csv; an optional
// .env file is read first.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if err := LoadEnvFile(""); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Engine = configuration.Engine.Normalize()

	return &configuration, nil
}

// Defaults returns the configuration used when no config file exists.
func Defaults() *Configuration {
	v := viper.New()
	setDefaults(v)
	var configuration Configuration
	_ = v.Unmarshal(&configuration)
	configuration.Engine = configuration.Engine.Normalize()
	return &configuration
}

// Every key needs a default so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("scenario", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.currency", "")
	v.SetDefault("output.file", "")
	v.SetDefault("engine.localStaffGrowth", constants.GrowthRatio)
}

// LoadEnvFile loads environment variables from path (".env" when empty).
// A missing file is not an error; variables already set are not replaced.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configured values and joins every problem into one error.
func (c *Configuration) Validate() error {
	values := validation.ConfigValues{
		LogLevel:         c.Logging.Level,
		LogFormat:        c.Logging.Format,
		OutputFormat:     c.Output.Format,
		LocalStaffGrowth: c.Engine.LocalStaffGrowth,
	}
	errs := values.ValidateAll()
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
