package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	LogLevel  string
	LogFormat string
	// Output format used when the output path has no recognised extension.
	Format string
	// Encoder quality in [1,100]. Only lossy formats use it.
	Quality int
	// Optional YAML file holding custom filter presets.
	PresetsPath string
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:    getEnvOrDefault("PIXELKIT_LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("PIXELKIT_LOG_FORMAT", "text"),
		Format:      strings.ToLower(getEnvOrDefault("PIXELKIT_FORMAT", "png")),
		Quality:     parseIntOrDefault("PIXELKIT_QUALITY", 90),
		PresetsPath: os.Getenv("PIXELKIT_PRESETS"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid PIXELKIT_LOG_LEVEL: %q", c.LogLevel)
	}
	switch c.Format {
	case "png", "jpg", "jpeg", "webp", "gif", "bmp", "tif", "tiff":
	default:
		return fmt.Errorf("invalid PIXELKIT_FORMAT: %q", c.Format)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("PIXELKIT_QUALITY must be in [1,100] (got %d)", c.Quality)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid PIXELKIT_LOG_FORMAT: %q", c.LogFormat)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}
