package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateXDG points every XDG directory at a fresh temp dir.
func isolateXDG(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return root
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, DefaultListen, mgr.viper.GetString("server.listen"))
	assert.Equal(t, "OpenDyslexic", mgr.viper.GetString("style.font_family"))
	assert.Equal(t, 200, mgr.viper.GetInt("style.observer_debounce_ms"))
	assert.Equal(t, 8, mgr.viper.GetInt("propagation.concurrency"))
	assert.Equal(t, 60, mgr.viper.GetInt("popup.debounce_ms"))
	assert.Contains(t, mgr.viper.GetStringSlice("propagation.internal_schemes"), "chrome-extension")
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Format = LogFormat("FANCY")
	cfg.Logging.Level = " DEBUG "
	cfg.Server.Listen = ""
	cfg.Propagation.InternalSchemes = []string{"About:", "chrome://", "about", " ", "file"}

	normalizeConfig(cfg)

	assert.Equal(t, LogFormatAuto, cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DefaultListen, cfg.Server.Listen)
	assert.Equal(t, []string{"about", "chrome", "file"}, cfg.Propagation.InternalSchemes)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "listen without port", mutate: func(c *Config) { c.Server.Listen = "localhost" }, wantErr: "server.listen"},
		{name: "listen bad port", mutate: func(c *Config) { c.Server.Listen = "127.0.0.1:99999" }, wantErr: "server.listen"},
		{name: "unknown level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "empty font", mutate: func(c *Config) { c.Style.FontFamily = "" }, wantErr: "style.font_family"},
		{name: "font injection", mutate: func(c *Config) { c.Style.FontFamily = "x; } body {" }, wantErr: "style.font_family"},
		{name: "negative debounce", mutate: func(c *Config) { c.Style.ObserverDebounceMs = -1 }, wantErr: "style.observer_debounce_ms"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Propagation.Concurrency = 0 }, wantErr: "propagation.concurrency"},
		{name: "zero timeout", mutate: func(c *Config) { c.Propagation.PushTimeoutMs = 0 }, wantErr: "propagation.push_timeout_ms"},
		{name: "slow popup", mutate: func(c *Config) { c.Popup.DebounceMs = 5000 }, wantErr: "popup.debounce_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManagerLoad_CreatesDefaultFile(t *testing.T) {
	root := isolateXDG(t)

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	configFile := filepath.Join(root, "config", "legible", "config.toml")
	assert.FileExists(t, configFile)
	assert.FileExists(t, filepath.Join(root, "config", "legible", "config.schema.json"))
	assert.DirExists(t, filepath.Join(root, "state", "legible"))
	assert.Equal(t, configFile, mgr.GetConfigFile())

	cfg := mgr.Get()
	want := DefaultConfig()
	want.Database.Path = filepath.Join(root, "data", "legible", "legible.db")
	assert.Equal(t, want, cfg)
}

func TestManagerLoad_EnvOverrides(t *testing.T) {
	isolateXDG(t)
	t.Setenv("LEGIBLE_LISTEN", "127.0.0.1:9999")
	t.Setenv("LEGIBLE_PROPAGATION_CONCURRENCY", "3")
	t.Setenv("LEGIBLE_LOG_LEVEL", "debug")

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Listen)
	assert.Equal(t, 3, cfg.Propagation.Concurrency)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestManagerLoad_ExplicitFile(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "legible.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[style]
font_family = "Atkinson Hyperlegible"
sweep_delay_ms = 10

[propagation]
push_timeout_ms = 500
`), 0o600))

	mgr, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "Atkinson Hyperlegible", cfg.Style.FontFamily)
	assert.Equal(t, 10*time.Millisecond, cfg.Style.SweepDelay())
	assert.Equal(t, 500*time.Millisecond, cfg.Propagation.PushTimeout())
	assert.Equal(t, defaultObserverDebounceMs, cfg.Style.ObserverDebounceMs)
}

func TestManagerLoad_MissingExplicitFile(t *testing.T) {
	isolateXDG(t)

	mgr, err := NewManager(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestManagerLoad_InvalidValues(t *testing.T) {
	isolateXDG(t)
	path := filepath.Join(t.TempDir(), "legible.toml")
	require.NoError(t, os.WriteFile(path, []byte("[propagation]\nconcurrency = 0\n"), 0o600))

	mgr, err := NewManager(path)
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "propagation.concurrency")
}

func TestManagerSave(t *testing.T) {
	isolateXDG(t)

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Popup.DebounceMs = 120
	cfg.Logging.Format = LogFormatJSON
	require.NoError(t, mgr.Save(cfg))

	reloaded, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 120, reloaded.Get().Popup.DebounceMs)
	assert.Equal(t, LogFormatJSON, reloaded.Get().Logging.Format)

	bad := mgr.Get()
	bad.Propagation.Concurrency = 0
	require.Error(t, mgr.Save(bad))
	assert.Equal(t, 120, mgr.Get().Popup.DebounceMs)
}

func TestManagerWatch_ReloadsOnChange(t *testing.T) {
	isolateXDG(t)

	mgr, err := NewManager("")
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	changed := make(chan *Config, 16)
	mgr.OnConfigChange(func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	})
	require.NoError(t, mgr.Watch())

	cfg := mgr.Get()
	cfg.Logging.Level = "warn"
	require.NoError(t, os.WriteFile(mgr.GetConfigFile(), encode(t, cfg), 0o600))

	require.Eventually(t, func() bool {
		return mgr.Get().Logging.Level == "warn"
	}, 3*time.Second, 20*time.Millisecond)
	require.Eventually(t, func() bool { return len(changed) > 0 }, time.Second, 10*time.Millisecond)
}

func TestWriteConfigOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/legible.db"

	require.NoError(t, WriteConfigOrdered(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#:schema ./config.schema.json")

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, *cfg, decoded)
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, `"propagation"`)
	assert.Contains(t, schema, `"push_timeout_ms"`)
	assert.Contains(t, schema, `"observer_debounce_ms"`)
	assert.NotContains(t, schema, `"PushTimeoutMs"`)
}

func encode(t *testing.T, cfg *Config) []byte {
	t.Helper()
	data, err := toml.Marshal(cfg)
	require.NoError(t, err)
	return data
}
