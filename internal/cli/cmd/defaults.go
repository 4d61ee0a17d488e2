package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/cli/styles"
	"github.com/bnema/legible/internal/infrastructure/messaging"
)

var (
	defaultsEnabled    bool
	defaultsFontSize   float64
	defaultsSpacing    float64
	defaultsLineHeight float64
	resetYes           bool
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the global settings",
	RunE:  runDefaultsShow,
}

var defaultsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the global settings",
	Long: `Change the global switch and the default style every site inherits.

Examples:
  legible defaults set --enabled
  legible defaults set --font-size 1.2 --line-height 1.8`,
	Args: cobra.NoArgs,
	RunE: runDefaultsSet,
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List sites with overrides or exclusions",
	Args:  cobra.NoArgs,
	RunE:  runSites,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore factory settings",
	Long:  `Drop every site override and exclusion and restore the default style.`,
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	rootCmd.AddCommand(defaultsCmd, sitesCmd, resetCmd)
	defaultsCmd.AddCommand(defaultsSetCmd)

	defaultsSetCmd.Flags().BoolVar(&defaultsEnabled, "enabled", false, "global on/off switch")
	defaultsSetCmd.Flags().Float64Var(&defaultsFontSize, "font-size", 0, "default font size multiplier (0.5-2.0)")
	defaultsSetCmd.Flags().Float64Var(&defaultsSpacing, "spacing", 0, "default letter spacing in px (0-5)")
	defaultsSetCmd.Flags().Float64Var(&defaultsLineHeight, "line-height", 0, "default line height multiplier (1.0-2.0)")

	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation prompt")
}

func runDefaultsShow(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	s, err := app.Client.GetAllSettings(app.Ctx())
	if err != nil {
		return report(app, err)
	}
	if outputJSON {
		return printJSON(s)
	}
	fmt.Println(app.Renderer.RenderDefaults(s))
	return nil
}

func runDefaultsSet(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var req messaging.SetDefaultsRequest
	flags := cmd.Flags()
	if flags.Changed("enabled") {
		req.GlobalEnabled = &defaultsEnabled
	}
	if flags.Changed("font-size") {
		req.DefaultFontSize = &defaultsFontSize
	}
	if flags.Changed("spacing") {
		req.DefaultLetterSpacing = &defaultsSpacing
	}
	if flags.Changed("line-height") {
		req.DefaultLineHeight = &defaultsLineHeight
	}
	if req.GlobalEnabled == nil && req.DefaultFontSize == nil && req.DefaultLetterSpacing == nil && req.DefaultLineHeight == nil {
		return fmt.Errorf("nothing to change: pass --enabled, --font-size, --spacing or --line-height")
	}

	if err := app.Client.SetDefaults(app.Ctx(), req); err != nil {
		return report(app, err)
	}
	fmt.Println(app.Renderer.RenderSuccess("defaults updated"))
	return nil
}

func runSites(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	s, err := app.Client.GetAllSettings(app.Ctx())
	if err != nil {
		return report(app, err)
	}
	if outputJSON {
		return printJSON(s.SiteSettings)
	}
	fmt.Println(app.Renderer.RenderSites(s))
	return nil
}

func runReset(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	if !resetYes {
		result, err := tea.NewProgram(styles.NewConfirm(app.Theme, "Reset every setting to factory values?")).Run()
		if err != nil {
			return fmt.Errorf("confirm: %w", err)
		}
		if confirm, ok := result.(styles.ConfirmModel); !ok || !confirm.Result() {
			fmt.Println(app.Renderer.RenderInfo("reset cancelled"))
			return nil
		}
	}

	if err := app.Client.ResetAll(app.Ctx()); err != nil {
		return report(app, err)
	}
	fmt.Println(app.Renderer.RenderSuccess("settings reset to defaults"))
	return nil
}
