package config

import (
	"os"
	"strconv"

	"statfolio/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the optional content database settings. When URL is
// empty the site runs on the embedded content store.
type DatabaseConfig struct {
	URL string
}

// DataConfig holds data source settings
type DataConfig struct {
	// TradeFile points at the quarterly trade workbook (.xlsx or .csv).
	// Empty means the bundled sample excerpt.
	TradeFile string
}

// AnalysisConfig holds approximation analysis defaults
type AnalysisConfig struct {
	// ContinuityCorrection applies the +0.5 shift to cumulative
	// normal approximations site-wide.
	ContinuityCorrection bool
	// RuleOfThumb is the success-failure threshold flagged in reports.
	RuleOfThumb float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Data: DataConfig{
			TradeFile: getEnvOrDefault("TRADE_FILE", ""),
		},
		Analysis: AnalysisConfig{
			ContinuityCorrection: getEnvBoolOrDefault("CONTINUITY_CORRECTION", false),
			RuleOfThumb:          getEnvFloatOrDefault("RULE_OF_THUMB", 10),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("server port must be numeric")
	}
	if config.Analysis.RuleOfThumb <= 0 {
		return errors.ConfigInvalid("rule-of-thumb threshold must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
