// Package config reads CLI defaults from the environment and an optional
// .env file. Command-line flags override every value here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvFormat   = "CREASE_FORMAT"
	EnvJournal  = "CREASE_JOURNAL"
	EnvLogLevel = "CREASE_LOG_LEVEL"
)

// Config holds CLI defaults.
type Config struct {
	// Format is the output format: "text" or "json".
	Format string

	// Journal is the SQLite journal path. Empty disables journaling.
	Journal string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json"}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then builds a Config.
// A missing envFile is not an error; a malformed one is.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() *Config {
	return &Config{
		Format:   strings.ToLower(getEnv(EnvFormat, "text")),
		Journal:  getEnv(EnvJournal, ""),
		LogLevel: strings.ToLower(getEnv(EnvLogLevel, "info")),
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var problems []string

	if !isValidFormat(c.Format) {
		problems = append(problems, fmt.Sprintf("invalid format %q: must be one of %v", c.Format, ValidFormats))
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// SlogLevel returns the configured level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return slog.LevelInfo
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
