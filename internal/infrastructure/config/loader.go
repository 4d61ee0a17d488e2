package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
	explicitFile   bool
}

// NewManager creates a new configuration manager. A non-empty configFile
// overrides the XDG location.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("toml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(configName, filepath.Ext(configName)))
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
	}

	// LEGIBLE_SERVER_LISTEN, LEGIBLE_DATABASE_PATH, ...
	v.SetEnvPrefix("LEGIBLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "LEGIBLE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LEGIBLE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "LEGIBLE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind LEGIBLE_LOG_FORMAT: %w", err)
	}
	if err := v.BindEnv("server.listen", "LEGIBLE_LISTEN"); err != nil {
		return nil, fmt.Errorf("failed to bind LEGIBLE_LISTEN: %w", err)
	}

	return &Manager{
		viper:        v,
		explicitFile: configFile != "",
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing default config file is created with the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.build()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !(m.explicitFile && errors.Is(err, os.ErrNotExist)) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if m.explicitFile {
		return fmt.Errorf("config file %s does not exist", m.viper.ConfigFileUsed())
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf("failed to create default config at %s: %w\nTry creating the directory manually or check permissions", configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// build unmarshals, normalizes and validates the current viper state.
func (m *Manager) build() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Server.Listen = strings.TrimSpace(config.Server.Listen)
	if config.Server.Listen == "" {
		config.Server.Listen = DefaultListen
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = defaultLogLevel
	}
	switch LogFormat(strings.ToLower(string(config.Logging.Format))) {
	case LogFormatJSON:
		config.Logging.Format = LogFormatJSON
	case LogFormatConsole:
		config.Logging.Format = LogFormatConsole
	default:
		config.Logging.Format = LogFormatAuto
	}

	config.Style.FontFamily = strings.TrimSpace(config.Style.FontFamily)
	if config.Style.StyleID == "" {
		config.Style.StyleID = defaultStyleID
	}

	config.Propagation.InternalSchemes = normalizeSchemes(config.Propagation.InternalSchemes)
}

// normalizeSchemes lowercases, strips "://" suffixes and deduplicates.
func normalizeSchemes(schemes []string) []string {
	out := make([]string, 0, len(schemes))
	for _, s := range schemes {
		s = strings.ToLower(strings.TrimSpace(s))
		s = strings.TrimSuffix(strings.TrimSuffix(s, "://"), ":")
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	configCopy.Propagation.InternalSchemes = slices.Clone(m.config.Propagation.InternalSchemes)
	return &configCopy
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	path := m.viper.ConfigFileUsed()
	if path == "" {
		var err error
		if path, err = GetConfigFile(); err != nil {
			return err
		}
	}
	if err := WriteConfigOrdered(cfg, path); err != nil {
		return err
	}

	saved := *cfg
	m.config = &saved
	if m.watching {
		// The watcher will see our own write.
		m.skipNextReload = true
		return nil
	}
	return m.viper.ReadInConfig()
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the default configuration and its JSON schema.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	defaults := DefaultConfig()
	if err := WriteConfigOrdered(defaults, configFile); err != nil {
		return err
	}

	schemaFile, err := GetSchemaFile()
	if err != nil {
		return err
	}
	return GenerateSchemaFile(schemaFile)
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("server.listen", defaults.Server.Listen)
	m.viper.SetDefault("database.path", defaults.Database.Path)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", string(defaults.Logging.Format))

	m.viper.SetDefault("style.font_family", defaults.Style.FontFamily)
	m.viper.SetDefault("style.font_base_url", defaults.Style.FontBaseURL)
	m.viper.SetDefault("style.style_id", defaults.Style.StyleID)
	m.viper.SetDefault("style.observer_debounce_ms", defaults.Style.ObserverDebounceMs)
	m.viper.SetDefault("style.sweep_delay_ms", defaults.Style.SweepDelayMs)

	m.viper.SetDefault("propagation.concurrency", defaults.Propagation.Concurrency)
	m.viper.SetDefault("propagation.push_timeout_ms", defaults.Propagation.PushTimeoutMs)
	m.viper.SetDefault("propagation.internal_schemes", defaults.Propagation.InternalSchemes)

	m.viper.SetDefault("popup.debounce_ms", defaults.Popup.DebounceMs)
}
