package config

import (
	"fmt"
	"strings"
)

const (
	minPollIntervalMS = 10
	maxPollIntervalMS = 10000
)

// Validate enforces required values before the watch loop starts.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Target.Title) == "" {
		return fmt.Errorf("target.title is required")
	}

	if cfg.Poll.IntervalMS < minPollIntervalMS || cfg.Poll.IntervalMS > maxPollIntervalMS {
		return fmt.Errorf("poll.interval_ms must be between %d and %d", minPollIntervalMS, maxPollIntervalMS)
	}

	return validateLogging(cfg.Logging)
}

func validateLogging(logging LoggingConfig) error {
	switch strings.ToLower(logging.Level) {
	case "error", "warn", "info", "debug":
		// valid
	default:
		return fmt.Errorf("logging.level must be one of error, warn, info, debug")
	}

	if logging.MaxSizeMB <= 0 {
		return fmt.Errorf("logging.max_size_mb must be greater than 0")
	}

	if logging.MaxBackups <= 0 {
		return fmt.Errorf("logging.max_backups must be greater than 0")
	}

	if strings.TrimSpace(logging.Dir) == "" {
		return fmt.Errorf("logging.dir is required")
	}

	return nil
}
