// Package config loads, validates and watches the daemon configuration file.
package config

import "time"

// Config represents the complete configuration for legible.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" toml:"server"`
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging"`
	// Style configures the stylesheet injected into pages.
	Style StyleConfig `mapstructure:"style" toml:"style"`
	// Propagation tunes how settings changes reach open pages.
	Propagation PropagationConfig `mapstructure:"propagation" toml:"propagation"`
	Popup       PopupConfig       `mapstructure:"popup" toml:"popup"`
}

// ServerConfig controls the daemon HTTP listener.
type ServerConfig struct {
	// Listen is the host:port the daemon binds and the CLI dials.
	Listen string `mapstructure:"listen" toml:"listen" jsonschema:"description=host:port the daemon binds and the CLI dials"`
}

// DatabaseConfig locates the settings store.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/legible/legible.db when empty.
	Path string `mapstructure:"path" toml:"path" jsonschema:"description=sqlite file holding the settings record"`
}

// LogFormat selects the zerolog writer.
type LogFormat string

const (
	LogFormatAuto    LogFormat = "auto"
	LogFormatJSON    LogFormat = "json"
	LogFormatConsole LogFormat = "console"
)

// LoggingConfig controls the daemon logger.
type LoggingConfig struct {
	Level  string    `mapstructure:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format LogFormat `mapstructure:"format" toml:"format" jsonschema:"enum=auto,enum=json,enum=console"`
}

// StyleConfig configures the stylesheet and the page observer.
type StyleConfig struct {
	FontFamily  string `mapstructure:"font_family" toml:"font_family" jsonschema:"description=font family injected into pages"`
	FontBaseURL string `mapstructure:"font_base_url" toml:"font_base_url" jsonschema:"description=base URL of the font files"`
	StyleID     string `mapstructure:"style_id" toml:"style_id" jsonschema:"description=id of the injected style element"`
	// ObserverDebounceMs coalesces DOM changes before a restyle.
	ObserverDebounceMs int `mapstructure:"observer_debounce_ms" toml:"observer_debounce_ms" jsonschema:"minimum=0,maximum=10000"`
	// SweepDelayMs defers the inline style sweep after a style update.
	SweepDelayMs int `mapstructure:"sweep_delay_ms" toml:"sweep_delay_ms" jsonschema:"minimum=0,maximum=10000"`
}

// ObserverDebounce returns ObserverDebounceMs as a duration.
func (c StyleConfig) ObserverDebounce() time.Duration {
	return time.Duration(c.ObserverDebounceMs) * time.Millisecond
}

// SweepDelay returns SweepDelayMs as a duration.
func (c StyleConfig) SweepDelay() time.Duration {
	return time.Duration(c.SweepDelayMs) * time.Millisecond
}

// PropagationConfig tunes the fan-out to open pages.
type PropagationConfig struct {
	Concurrency   int `mapstructure:"concurrency" toml:"concurrency" jsonschema:"minimum=1,maximum=64"`
	PushTimeoutMs int `mapstructure:"push_timeout_ms" toml:"push_timeout_ms" jsonschema:"minimum=1"`
	// InternalSchemes lists URL schemes whose pages are never styled.
	InternalSchemes []string `mapstructure:"internal_schemes" toml:"internal_schemes"`
}

// PushTimeout returns PushTimeoutMs as a duration.
func (c PropagationConfig) PushTimeout() time.Duration {
	return time.Duration(c.PushTimeoutMs) * time.Millisecond
}

// PopupConfig controls the terminal popup.
type PopupConfig struct {
	// DebounceMs coalesces slider edits before they are sent.
	DebounceMs int `mapstructure:"debounce_ms" toml:"debounce_ms" jsonschema:"minimum=0,maximum=1000"`
}

// Debounce returns DebounceMs as a duration.
func (c PopupConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
