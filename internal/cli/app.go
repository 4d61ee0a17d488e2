// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"os"

	"github.com/bnema/legible/internal/cli/styles"
	"github.com/bnema/legible/internal/infrastructure/config"
	"github.com/bnema/legible/internal/infrastructure/httpapi"
	"github.com/bnema/legible/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	// ConfigErr is the error hit while loading the config file, if any.
	// Config then holds the defaults.
	ConfigErr error
	Theme     *styles.Theme
	Renderer  *styles.SettingsRenderer
	Client    *httpapi.Client

	// Context with logger
	ctx context.Context
}

// NewApp creates a new CLI application. configFile overrides the XDG config
// location and addr overrides the configured daemon address; both may be empty.
func NewApp(configFile, addr string) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	loadErr := mgr.Load()
	if loadErr == nil {
		cfg = mgr.Get()
	}

	if addr == "" {
		addr = cfg.Server.Listen
	}

	// CLI commands print to the terminal; keep logs quiet unless asked.
	logLevel := "warn"
	if envLevel := os.Getenv("LEGIBLE_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.NewFromConfigValues(logLevel, string(cfg.Logging.Format))
	ctx := logging.WithContext(context.Background(), logger)
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("using default configuration")
	}

	theme := styles.NewTheme()

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		ConfigErr:     loadErr,
		Theme:         theme,
		Renderer:      styles.NewSettingsRenderer(theme),
		Client:        httpapi.NewClient(addr),
		ctx:           ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
