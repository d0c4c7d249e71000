package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in the config.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("config validation failed: %s", strings.Join(parts, "; "))
}

// Validate checks a normalized config.
func Validate(cfg Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}
	switch cfg.Store {
	case "file", "sqlite", "memory":
	default:
		add("store", fmt.Sprintf("unknown store %q (expected file|sqlite|memory)", cfg.Store))
	}
	if cfg.PassThreshold < 0 || cfg.PassThreshold > 100 {
		add("pass_threshold", "must be between 0 and 100")
	}
	switch cfg.UI {
	case "auto", "live", "plain":
	default:
		add("ui", fmt.Sprintf("invalid ui mode %q (expected auto|live|plain)", cfg.UI))
	}
	switch cfg.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		add("log_level", fmt.Sprintf("unknown level %q", cfg.LogLevel))
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		add("log_format", fmt.Sprintf("unknown format %q (expected text|json)", cfg.LogFormat))
	}
	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}
