// Package cmd provides Cobra CLI commands for legible.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/cli"
	"github.com/bnema/legible/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configFile string
	daemonAddr string
	rootCmd    = &cobra.Command{
		Use:   "legible",
		Short: "Readable typography for every page, per site",
		Long: `Legible - a typography daemon that makes pages easier to read.

It keeps one settings record (a global switch, default font size, letter
spacing and line height, per-site overrides and an exclusion list) and pushes
the resolved style to every open page whenever something changes.

Use 'legible serve' to start the daemon, then drive it with the other
subcommands or the interactive 'legible popup'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(configFile, daemonAddr)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/legible/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&daemonAddr, "addr", "a", "", "daemon address (default from config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
