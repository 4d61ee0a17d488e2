// Package bootstrap wires the daemon together and runs it.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/legible/internal/application/usecase"
	"github.com/bnema/legible/internal/infrastructure/config"
	"github.com/bnema/legible/internal/infrastructure/httpapi"
	"github.com/bnema/legible/internal/infrastructure/messaging"
	"github.com/bnema/legible/internal/infrastructure/page"
	"github.com/bnema/legible/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/legible/internal/infrastructure/tabs"
	"github.com/bnema/legible/internal/logging"
)

const (
	lockDirPerm   = 0o755
	eventBuffer   = 16
	componentName = "daemon"
)

// ErrAlreadyRunning is returned when another daemon holds the lock file.
var ErrAlreadyRunning = errors.New("daemon already running")

// Options tweak daemon start.
type Options struct {
	// LockFile defaults to $XDG_STATE_HOME/legible/legible.lock.
	LockFile string
	// Listen overrides the configured server address.
	Listen string
}

// Daemon is a started daemon: settings store, page host and HTTP API.
type Daemon struct {
	Registry   *tabs.Registry
	Hub        *messaging.Hub
	Settings   *usecase.ManageSettingsUseCase
	Propagator *usecase.PropagateSettingsUseCase

	lock   *flock.Flock
	db     *sql.DB
	server *httpapi.Server
}

// StartDaemon takes the instance lock, opens and initializes the settings
// store, and binds the HTTP listener. Serve must be called to accept requests.
func StartDaemon(ctx context.Context, cfg *config.Config, opts Options) (*Daemon, error) {
	ctx = logging.WithComponent(ctx, componentName)
	log := logging.FromContext(ctx)
	timer := NewStartupTimer()

	lock, err := acquireLock(opts.LockFile)
	if err != nil {
		return nil, err
	}
	timer.Mark("lock")

	d := &Daemon{lock: lock}
	ok := false
	defer func() {
		if !ok {
			_ = d.Close(ctx)
		}
	}()

	d.db, err = sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	repo := sqlite.NewSettingsRepository(d.db)
	timer.Mark("database")

	d.Registry = tabs.NewRegistry(page.Options{
		StyleID:          cfg.Style.StyleID,
		FontFamily:       cfg.Style.FontFamily,
		FontBaseURL:      cfg.Style.FontBaseURL,
		ObserverDebounce: cfg.Style.ObserverDebounce(),
		SweepDelay:       cfg.Style.SweepDelay(),
	})
	d.Hub = messaging.NewHub(eventBuffer)
	d.Propagator = usecase.NewPropagateSettingsUseCase(repo, d.Registry, d.Registry, d.Hub, usecase.PropagateOptions{
		InternalSchemes: cfg.Propagation.InternalSchemes,
		Concurrency:     cfg.Propagation.Concurrency,
		PushTimeout:     cfg.Propagation.PushTimeout(),
	})
	d.Settings = usecase.NewManageSettingsUseCase(repo, d.Propagator)

	if err := d.Settings.Init(ctx); err != nil {
		return nil, err
	}
	timer.Mark("settings")

	router := messaging.NewRouter()
	if err := messaging.RegisterSettingsHandlers(router, d.Settings, d.Registry); err != nil {
		return nil, fmt.Errorf("failed to register message handlers: %w", err)
	}
	handler := httpapi.NewHandler(ctx, httpapi.Dependencies{
		Router:   router,
		Hub:      d.Hub,
		Registry: d.Registry,
		Settings: d.Settings,
		Pusher:   d.Propagator,
	})

	d.server, err = httpapi.Listen(ctx, cfg.Server.Listen, handler)
	if err != nil {
		return nil, err
	}
	timer.Mark("listen")
	timer.LogDebug(ctx)

	log.Info().
		Str("addr", d.server.Addr()).
		Str("database", cfg.Database.Path).
		Strs("actions", router.Actions()).
		Msg("daemon started")

	ok = true
	return d, nil
}

func acquireLock(path string) (*flock.Flock, error) {
	if path == "" {
		var err error
		if path, err = config.GetLockFile(); err != nil {
			return nil, fmt.Errorf("failed to get lock file path: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), lockDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s is locked", ErrAlreadyRunning, path)
	}
	return lock, nil
}

// Addr returns the bound HTTP address.
func (d *Daemon) Addr() string {
	return d.server.Addr()
}

// Serve blocks until the HTTP server is shut down.
func (d *Daemon) Serve() error {
	return d.server.Serve()
}

// Close stops the HTTP server, closes the store and releases the lock.
func (d *Daemon) Close(ctx context.Context) error {
	var errs []error
	if d.server != nil {
		if err := d.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down http server: %w", err))
		}
	}
	if d.db != nil {
		if err := sqlite.Close(d.db); err != nil {
			errs = append(errs, err)
		}
	}
	if d.lock != nil {
		if err := d.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("failed to release lock: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Run starts the daemon and serves until ctx is cancelled. Logging levels
// follow config file edits; other changes need a restart.
func Run(ctx context.Context, mgr *config.Manager, opts Options) error {
	log := logging.FromContext(ctx)
	cfg := mgr.Get()
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	d, err := StartDaemon(ctx, cfg, opts)
	if err != nil {
		return err
	}

	mgr.OnConfigChange(func(c *config.Config) {
		zerolog.SetGlobalLevel(logging.ParseLevel(c.Logging.Level))
		log.Info().Str("level", c.Logging.Level).Msg("configuration reloaded")
		if (opts.Listen == "" && c.Server.Listen != cfg.Server.Listen) || c.Database.Path != cfg.Database.Path {
			log.Warn().Msg("server and database changes apply after a restart")
		}
	})
	if err := mgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watching disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(d.Serve)
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		return d.Close(context.WithoutCancel(ctx))
	})
	return g.Wait()
}

// NewDaemonLogger builds the daemon logger. The level is enforced globally
// so that config reloads can change it.
func NewDaemonLogger(cfg *config.Config) zerolog.Logger {
	zerolog.SetGlobalLevel(logging.ParseLevel(cfg.Logging.Level))
	return logging.NewFromConfigValues("trace", string(cfg.Logging.Format))
}
