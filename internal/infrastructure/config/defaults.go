package config

import (
	"slices"

	"github.com/bnema/legible/internal/domain/url"
)

// Default configuration constants
const (
	// Server defaults
	DefaultListen = "127.0.0.1:7431"

	// Logging defaults
	defaultLogLevel  = "info"
	defaultLogFormat = LogFormatAuto

	// Style defaults
	defaultFontFamily         = "OpenDyslexic"
	defaultFontBaseURL        = "fonts/"
	defaultStyleID            = "legible-typography"
	defaultObserverDebounceMs = 200
	defaultSweepDelayMs       = 50

	// Propagation defaults
	defaultConcurrency   = 8
	defaultPushTimeoutMs = 2000
	maxConcurrency       = 64

	// Popup defaults
	defaultPopupDebounceMs = 60
	maxPopupDebounceMs     = 1000

	maxDelayMs = 10000
)

// DefaultConfig returns the default configuration. Database.Path is left
// empty and resolved at load time.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: DefaultListen,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Style: StyleConfig{
			FontFamily:         defaultFontFamily,
			FontBaseURL:        defaultFontBaseURL,
			StyleID:            defaultStyleID,
			ObserverDebounceMs: defaultObserverDebounceMs,
			SweepDelayMs:       defaultSweepDelayMs,
		},
		Propagation: PropagationConfig{
			Concurrency:     defaultConcurrency,
			PushTimeoutMs:   defaultPushTimeoutMs,
			InternalSchemes: slices.Clone(url.DefaultInternalSchemes),
		},
		Popup: PopupConfig{
			DebounceMs: defaultPopupDebounceMs,
		},
	}
}
