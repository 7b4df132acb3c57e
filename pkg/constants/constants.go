// Package constants provides shared constants for the school-forecast application.
package constants

// SchemaVersion is the current scenario document schema. Documents carrying an
// older or missing version are upgraded by scenario.Normalize.
const SchemaVersion = 3

// Projection years.
const (
	// YearCount is the number of projected academic years (Y1, Y2, Y3).
	YearCount = 3
	// PeriodCount is the number of capacity periods (current plus Y1..Y3).
	PeriodCount = 4
)

// Currency constants
const (
	// CurrencyLocal marks amounts entered in the school's local currency.
	CurrencyLocal = "LOCAL"
	// CurrencyUSD marks amounts entered or displayed in US dollars.
	CurrencyUSD = "USD"
	// DefaultLocalCurrencyCode is the ISO code used for the local currency label.
	DefaultLocalCurrencyCode = "TRY"
)

// Program types
const (
	ProgramLocal         = "local"
	ProgramInternational = "international"
)

// HR growth rules
const (
	// GrowthRatio grows every role's unit cost by the configured unitCostRatio.
	GrowthRatio = "ratio"
	// GrowthInflation grows local staff unit costs by the inflation factors.
	GrowthInflation = "inflation"
	// DefaultUnitCostRatio applies when a scenario carries no usable ratio.
	DefaultUnitCostRatio = 1.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"
	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
	// OutputFormatXLSX is the spreadsheet output format
	OutputFormatXLSX = "xlsx"
	// OutputFormatJSON is the machine-readable report format
	OutputFormatJSON = "json"
	// ExportFormatYAML exports the normalized scenario document
	ExportFormatYAML = "yaml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
	// EnvPrefix prefixes environment overrides read by viper.
	EnvPrefix = "SCHOOL_FORECAST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"
	// DefaultMaxUploadSizeBytes is the default maximum request body size for scenario documents (1 MB)
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024
	// DefaultDatabasePath is where the sqlite scenario store lives when none is configured
	DefaultDatabasePath = "school-forecast.db"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
	// DecimalPlaces is the number of decimals rendered for money
	DecimalPlaces = 2
)
