package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	domainvalidation "github.com/bnema/legible/internal/domain/validation"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// validateConfig collects every invalid value and reports them together.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateServer(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateStyle(config)...)
	validationErrors = append(validationErrors, validatePropagation(config)...)
	validationErrors = append(validationErrors, validatePopup(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

func validateServer(config *Config) []string {
	_, port, err := net.SplitHostPort(config.Server.Listen)
	if err != nil {
		return []string{fmt.Sprintf("server.listen must be host:port (got %q)", config.Server.Listen)}
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return []string{fmt.Sprintf("server.listen has an invalid port %q", port)}
	}
	return nil
}

func validateLogging(config *Config) []string {
	for _, level := range validLogLevels {
		if config.Logging.Level == level {
			return nil
		}
	}
	return []string{fmt.Sprintf("logging.level must be one of %s (got %q)", strings.Join(validLogLevels, ", "), config.Logging.Level)}
}

func validateStyle(config *Config) []string {
	validationErrors := domainvalidation.ValidateFontFamily("style.font_family", config.Style.FontFamily)
	if strings.ContainsAny(config.Style.FontFamily, `"'`) {
		validationErrors = append(validationErrors, "style.font_family must not contain quotes")
	}
	if strings.ContainsAny(config.Style.StyleID, " \t\"'") {
		validationErrors = append(validationErrors, "style.style_id must not contain whitespace or quotes")
	}
	if config.Style.ObserverDebounceMs < 0 || config.Style.ObserverDebounceMs > maxDelayMs {
		validationErrors = append(validationErrors, fmt.Sprintf("style.observer_debounce_ms must be between 0 and %d", maxDelayMs))
	}
	if config.Style.SweepDelayMs < 0 || config.Style.SweepDelayMs > maxDelayMs {
		validationErrors = append(validationErrors, fmt.Sprintf("style.sweep_delay_ms must be between 0 and %d", maxDelayMs))
	}
	return validationErrors
}

func validatePropagation(config *Config) []string {
	var validationErrors []string
	if config.Propagation.Concurrency < 1 || config.Propagation.Concurrency > maxConcurrency {
		validationErrors = append(validationErrors, fmt.Sprintf("propagation.concurrency must be between 1 and %d", maxConcurrency))
	}
	if config.Propagation.PushTimeoutMs <= 0 {
		validationErrors = append(validationErrors, "propagation.push_timeout_ms must be positive")
	}
	return validationErrors
}

func validatePopup(config *Config) []string {
	if config.Popup.DebounceMs < 0 || config.Popup.DebounceMs > maxPopupDebounceMs {
		return []string{fmt.Sprintf("popup.debounce_ms must be between 0 and %d", maxPopupDebounceMs)}
	}
	return nil
}
