package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/bootstrap"
	"github.com/bnema/legible/internal/logging"
)

var serveLockFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the typography daemon",
	Long: `Start the daemon: open the settings store, host pages and serve the
HTTP API the other subcommands talk to.

Only one daemon runs per user; a second 'legible serve' exits with an error.
Log levels follow edits of the config file, other settings need a restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveLockFile, "lock-file", "", "single-instance lock (default $XDG_STATE_HOME/legible/legible.lock)")
}

func runServe(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	if app.ConfigErr != nil {
		return fmt.Errorf("load config: %w", app.ConfigErr)
	}

	logger := bootstrap.NewDaemonLogger(app.ConfigManager.Get())
	ctx, stop := signal.NotifyContext(logging.WithContext(context.Background(), logger), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Debug().Str("config", app.ConfigManager.GetConfigFile()).Msg("configuration loaded")

	return bootstrap.Run(ctx, app.ConfigManager, bootstrap.Options{LockFile: serveLockFile, Listen: daemonAddr})
}
