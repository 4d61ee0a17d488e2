package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the daemon is running",
	RunE: func(_ *cobra.Command, _ []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}

		health, err := app.Client.Health(app.Ctx())
		if err != nil {
			return report(app, err)
		}
		if outputJSON {
			return printJSON(health)
		}
		fmt.Println(app.Renderer.RenderStatus(app.Client.BaseURL(), health.Pages, health.Listeners))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
