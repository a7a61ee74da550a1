package config

import (
	"fmt"
	"strings"
)

const maxUndoTimeoutMs = 600000

// validateConfig collects every invalid value into a single error.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateClosure(config)...)
	validationErrors = append(validationErrors, validatePersistence(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateClosure(config *Config) []string {
	if config.Closure.UndoTimeoutMs < 0 || config.Closure.UndoTimeoutMs > maxUndoTimeoutMs {
		return []string{fmt.Sprintf(
			"closure.undo_timeout_ms must be between 0 and %d (got: %d)",
			maxUndoTimeoutMs,
			config.Closure.UndoTimeoutMs,
		)}
	}
	return nil
}

func validatePersistence(config *Config) []string {
	if config.Persistence.SnapshotIntervalMs < 0 {
		return []string{"persistence.snapshot_interval_ms must be non-negative"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "disabled", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, disabled (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: json, console (got: %s)",
			config.Logging.Format,
		))
	}
	return validationErrors
}
