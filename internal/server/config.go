package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/school-forecast/internal/config"
	"github.com/iwvelando/school-forecast/internal/engine"
	"github.com/iwvelando/school-forecast/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the scenario service.
type Config struct {
	Address        string               `yaml:"address"`
	MaxUploadSize  string               `yaml:"maxUploadSize"`
	DatabasePath   string               `yaml:"databasePath"`   // ":memory:" keeps scenarios in memory
	AllowedOrigins []string             `yaml:"allowedOrigins"` // CORS origins for the editing surface
	Logging        config.LoggingConfig `yaml:"logging"`
	Engine         engine.Options       `yaml:"engine"`

	uploadSizeBytes int64
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

func defaultConfig() *Config {
	return &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   strconv.FormatInt(constants.DefaultMaxUploadSizeBytes, 10),
		DatabasePath:    constants.DefaultDatabasePath,
		AllowedOrigins:  []string{"*"},
		Engine:          engine.Options{}.Normalize(),
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}
}

// LoadConfig reads the server settings from a YAML file. An empty path or a
// missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read server config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UploadSizeBytes is the request body limit in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes replaces the request body limit. Non-positive sizes are ignored.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)
}

// applyDefaults fills blank settings after decoding and resolves the upload limit.
func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		c.DatabasePath = constants.DefaultDatabasePath
	}

	var origins []string
	for _, origin := range c.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.AllowedOrigins = origins
	c.Engine = c.Engine.Normalize()

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = size
	c.MaxUploadSize = strconv.FormatInt(size, 10)
	return nil
}

// ParseSize converts sizes such as "512", "256K" or "10MB" into bytes. Units
// are binary and case-insensitive. An empty value is the default upload limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	number := strings.TrimRightFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	unit := strings.TrimSpace(trimmed[len(number):])
	number = strings.TrimSpace(number)
	if number == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", unit)
	}
	n, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n < 0 || n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size out of range: %s", value)
	}
	return n * multiplier, nil
}
