package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"strompris/domain/pricing"
	"strompris/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Data     DataConfig   `yaml:"data"`
	API      APIConfig    `yaml:"api"`
	LogLevel string       `yaml:"log_level"`
}

// ServerConfig holds dashboard server settings
type ServerConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

// DataConfig holds the spreadsheet source settings
type DataConfig struct {
	File    string `yaml:"file"`
	MinYear int    `yaml:"min_year"`
	MaxYear int    `yaml:"max_year"`
}

// APIConfig holds headless JSON API settings
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in configuration: dashboard on 8080, headless
// API on 8081, the bundled spreadsheet, schema bounds 2014..2024.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, GinMode: "release"},
		Data: DataConfig{
			File:    "strompriser.xlsx",
			MinYear: pricing.DefaultMinYear,
			MaxYear: pricing.DefaultMaxYear,
		},
		API:      APIConfig{Port: 8081, AllowedOrigins: []string{"*"}},
		LogLevel: "INFO",
	}
}

// Load builds the configuration in precedence order: defaults, then an
// optional YAML file named by CONFIG_FILE, then environment variables.
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}
	config.applyEnv()

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("cannot read %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("cannot parse %s: %v", path, err))
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnvIntOrDefault("PORT", c.Server.Port)
	c.Server.GinMode = getEnvOrDefault("GIN_MODE", c.Server.GinMode)
	c.Data.File = getEnvOrDefault("DATA_FILE", c.Data.File)
	c.Data.MinYear = getEnvIntOrDefault("DATA_MIN_YEAR", c.Data.MinYear)
	c.Data.MaxYear = getEnvIntOrDefault("DATA_MAX_YEAR", c.Data.MaxYear)
	c.API.Port = getEnvIntOrDefault("API_PORT", c.API.Port)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		var parsed []string
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				parsed = append(parsed, trimmed)
			}
		}
		c.API.AllowedOrigins = parsed
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.ConfigInvalid(fmt.Sprintf("server port %d out of range", c.Server.Port))
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return errors.ConfigInvalid(fmt.Sprintf("api port %d out of range", c.API.Port))
	}
	if c.Data.File == "" {
		return errors.ConfigInvalid("data file is required")
	}
	if c.Data.MinYear > c.Data.MaxYear {
		return errors.ConfigInvalid(fmt.Sprintf("data year bounds inverted: %d > %d", c.Data.MinYear, c.Data.MaxYear))
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

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
