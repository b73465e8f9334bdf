// Package config loads the HTTP server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// Config holds the server configuration
type Config struct {
	Port         string
	GinMode      string
	MaxBodySize  int64 // in bytes
	DefaultLevel int   // used when a request names no level
	GzipMinSize  int   // smallest response worth gzipping
}

// Load reads the configuration from environment variables, using defaults
// for the ones that are unset. Every malformed variable is reported.
func Load() (*Config, error) {
	var errlist []error
	cfg := &Config{
		Port:         getEnv("ZPACK_PORT", "8080"),
		GinMode:      getEnv("ZPACK_GIN_MODE", "release"),
		MaxBodySize:  int64(getEnvInt("ZPACK_MAX_BODY", 32<<20, &errlist)),
		DefaultLevel: getEnvInt("ZPACK_DEFAULT_LEVEL", 6, &errlist),
		GzipMinSize:  getEnvInt("ZPACK_GZIP_MIN_SIZE", 1024, &errlist),
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		errlist = append(errlist, fmt.Errorf("ZPACK_GIN_MODE must be debug, release or test, got %q", cfg.GinMode))
	}
	if cfg.DefaultLevel < -1 || cfg.DefaultLevel > 9 {
		errlist = append(errlist, fmt.Errorf("ZPACK_DEFAULT_LEVEL must be -1 to 9, got %d", cfg.DefaultLevel))
	}
	if cfg.MaxBodySize <= 0 {
		errlist = append(errlist, fmt.Errorf("ZPACK_MAX_BODY must be positive, got %d", cfg.MaxBodySize))
	}
	if cfg.GzipMinSize < 0 {
		errlist = append(errlist, fmt.Errorf("ZPACK_GZIP_MIN_SIZE must not be negative, got %d", cfg.GzipMinSize))
	}

	if len(errlist) != 0 {
		return nil, &multierror.Error{Errors: errlist}
	}
	return cfg, nil
}

// Addr returns the listen address for the configured port.
func (cfg *Config) Addr() string {
	return ":" + cfg.Port
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int, errlist *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errlist = append(*errlist, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return n
}
