package logger

import (
	"os"
	"strings"
)

// LoggerConfig is the environment-derived logging configuration,
// resolved once when the singleton logger is built.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
}

// DefaultConfig resolves LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT_FILE.
// Level and format are lowercased so comparisons stay simple.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      strings.ToLower(envOr("LOG_LEVEL", "info")),
		Format:     strings.ToLower(envOr("LOG_FORMAT", "json")),
		OutputFile: envOr("LOG_OUTPUT_FILE", "stdout"),
	}
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
