package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/cli"
	"github.com/bnema/legible/internal/cli/styles"
	"github.com/bnema/legible/internal/infrastructure/config"
	"github.com/bnema/legible/internal/infrastructure/fonts"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the setup and diagnose issues",
	Long: `Doctor checks that legible can do its job:
- the config file loads and validates
- the settings database exists
- the daemon answers
- the configured font family is installed locally

A missing local font is only a warning: pages load it from font_base_url.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	checks := []styles.DoctorCheck{
		checkConfig(app),
		checkDatabase(app),
		checkDaemon(app),
		checkFont(app),
	}
	fmt.Println(styles.NewDoctorRenderer(app.Theme).Render(checks))

	for _, c := range checks {
		if c.Status == styles.DoctorFail {
			return errReported
		}
	}
	return nil
}

func checkConfig(app *cli.App) styles.DoctorCheck {
	c := styles.DoctorCheck{Name: "config", Detail: app.ConfigManager.GetConfigFile()}
	if app.ConfigErr != nil {
		c.Status = styles.DoctorFail
		c.Detail = app.ConfigErr.Error()
	}
	return c
}

func checkDatabase(app *cli.App) styles.DoctorCheck {
	path := app.Config.Database.Path
	if path == "" {
		path, _ = config.GetDatabaseFile()
	}
	c := styles.DoctorCheck{Name: "database", Detail: path}
	if _, err := os.Stat(path); err != nil {
		c.Status = styles.DoctorWarn
		c.Detail = "not created yet, run 'legible serve': " + path
	}
	return c
}

func checkDaemon(app *cli.App) styles.DoctorCheck {
	c := styles.DoctorCheck{Name: "daemon"}
	health, err := app.Client.Health(app.Ctx())
	if err != nil {
		c.Status = styles.DoctorFail
		c.Detail = err.Error()
		return c
	}
	c.Detail = fmt.Sprintf("%s, %d pages, %d listeners", app.Client.BaseURL(), health.Pages, health.Listeners)
	return c
}

func checkFont(app *cli.App) styles.DoctorCheck {
	family := app.Config.Style.FontFamily
	c := styles.DoctorCheck{Name: "font", Detail: family + " installed"}

	detector := fonts.NewDetector()
	if !detector.IsAvailable(app.Ctx()) {
		c.Status = styles.DoctorWarn
		c.Detail = "fc-list not found, cannot check " + family
		return c
	}
	ok, err := detector.HasFamily(app.Ctx(), family)
	switch {
	case err != nil:
		c.Status = styles.DoctorWarn
		c.Detail = err.Error()
	case !ok:
		c.Status = styles.DoctorWarn
		c.Detail = family + " not installed locally, pages load it from " + app.Config.Style.FontBaseURL
	}
	return c
}
