package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iwvelando/school-forecast/internal/config"
	"github.com/iwvelando/school-forecast/internal/forecast"
	"github.com/iwvelando/school-forecast/internal/optimizer"
	"github.com/iwvelando/school-forecast/internal/scenario"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"github.com/iwvelando/school-forecast/pkg/output"
	"github.com/iwvelando/school-forecast/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file; defaults apply when it does not exist")
	scenarioPath := flag.String("scenario", "", "path to the scenario document (json or yaml)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, xlsx, json")
	outputFile := flag.String("output", "", "write the report to this file instead of stdout")
	currencyFlag := flag.String("currency", "", "display currency override: LOCAL, USD")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	breakEven := flag.Bool("break-even", false, "also search the tuition and operating break-even levels")
	breakEvenFloor := flag.Float64("break-even-floor", 0, "minimum yearly net result for the break-even search, in the display currency")
	flag.Parse()

	conf, err := loadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if *currencyFlag != "" {
		conf.Output.Currency = *currencyFlag
	}
	if *outputFile != "" {
		conf.Output.File = *outputFile
	}
	if *scenarioPath != "" {
		conf.Scenario = *scenarioPath
	}

	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}
	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if conf.Scenario == "" {
		logger.Fatal("no scenario document given; use -scenario or the scenario config key",
			zap.String("op", "main"),
		)
	}

	doc, err := scenario.LoadFile(conf.Scenario)
	if err != nil {
		logger.Fatal("failed to load scenario",
			zap.String("op", "main"),
			zap.String("path", conf.Scenario),
			zap.Error(err),
		)
	}

	opts := forecast.Options{
		Currency: conf.Output.Currency,
		Engine:   conf.Engine,
	}
	results, err := forecast.Assemble(logger, doc, opts)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Data-quality warnings are reported, never fatal.
	for _, warning := range results.Warnings {
		logger.Warn("Scenario warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := writeReport(conf.Output, results); err != nil {
		logger.Fatal("failed to write report",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *breakEven {
		runBreakEven(logger, doc, opts, *breakEvenFloor)
	}
}

// runBreakEven logs one line per break-even target. Search failures are
// logged, the report has already been written.
func runBreakEven(logger *zap.Logger, doc scenario.Document, opts forecast.Options, floor float64) {
	runner, err := optimizer.NewRunner(logger, doc, opts)
	if err != nil {
		logger.Error("failed to start break-even search",
			zap.String("op", "main.runBreakEven"),
			zap.Error(err),
		)
		return
	}
	summaries, err := runner.RunAll(floor)
	if err != nil {
		logger.Error("break-even search failed",
			zap.String("op", "main.runBreakEven"),
			zap.Error(err),
		)
		return
	}
	for _, summary := range summaries {
		logger.Info("Break-even "+summary.Target+": "+summary.ValueDisplay+" of current "+summary.Field,
			zap.String("op", "main.runBreakEven"),
			zap.Float64("minimumNetResult", summary.MinimumNetResult),
			zap.Float64("headroom", summary.Headroom),
			zap.Bool("converged", summary.Converged),
			zap.Strings("notes", summary.Notes),
		)
	}
}

// loadConfiguration reads the config file, falling back to defaults when the
// file does not exist.
func loadConfiguration(path string) (*config.Configuration, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.LoadEnvFile(""); err != nil {
			return nil, err
		}
		return config.Defaults(), nil
	}
	return config.LoadConfiguration(path)
}

func writeReport(out config.OutputConfig, results *forecast.Forecast) error {
	var w io.Writer = os.Stdout
	if out.File != "" {
		if dir := filepath.Dir(out.File); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", dir, err)
			}
		}
		file, err := os.Create(out.File)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", out.File, err)
		}
		defer file.Close()
		w = file
	}
	return output.Write(w, results, out.Format)
}
