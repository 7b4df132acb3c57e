package config

import (
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    LoggingConfig
		override  string
		wantError bool
	}{
		{
			name:   "Defaults",
			config: LoggingConfig{},
		},
		{
			name:   "Console debug",
			config: LoggingConfig{Level: "debug", Format: "console"},
		},
		{
			name:     "Override wins",
			config:   LoggingConfig{Level: "bogus"},
			override: "warn",
		},
		{
			name:      "Invalid level",
			config:    LoggingConfig{Level: "bogus"},
			wantError: true,
		},
		{
			name:      "Invalid format",
			config:    LoggingConfig{Format: "xml"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Errorf("NewLogger() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLogger() error = %v", err)
			}
			if logger == nil {
				t.Errorf("NewLogger() returned nil logger")
			}
		})
	}
}

func TestNewLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "forecast.log")
	logger, err := NewLogger(LoggingConfig{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("written to file")
	_ = logger.Sync()
}
