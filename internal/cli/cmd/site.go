package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/domain/url"
	"github.com/bnema/legible/internal/infrastructure/messaging"
)

var (
	siteFontSize   float64
	siteSpacing    float64
	siteLineHeight float64
	siteForce      bool
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Inspect and edit the settings of one site",
	Long: `Inspect and edit per-site settings. A site is a host name; a full URL
is accepted and reduced to its host.`,
}

var siteGetCmd = &cobra.Command{
	Use:   "get <site>",
	Short: "Show the resolved style of a site",
	Args:  cobra.ExactArgs(1),
	RunE:  runSiteGet,
}

var siteSetCmd = &cobra.Command{
	Use:   "set <site>",
	Short: "Override font size, spacing, line height or force for a site",
	Long: `Store a partial override for a site. Only the flags given are changed;
everything else keeps inheriting the defaults.

Examples:
  legible site set example.com --font-size 1.3
  legible site set https://news.example.org/a --line-height 1.8 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runSiteSet,
}

func init() {
	rootCmd.AddCommand(siteCmd)
	siteCmd.AddCommand(siteGetCmd, siteSetCmd)

	siteSetCmd.Flags().Float64Var(&siteFontSize, "font-size", 0, "font size multiplier (0.5-2.0)")
	siteSetCmd.Flags().Float64Var(&siteSpacing, "spacing", 0, "letter spacing in px (0-5)")
	siteSetCmd.Flags().Float64Var(&siteLineHeight, "line-height", 0, "line height multiplier (1.0-2.0)")
	siteSetCmd.Flags().BoolVar(&siteForce, "force", false, "override the page's own font sizes")

	siteCmd.AddCommand(
		siteEnabledCommand("enable", "Turn the style on for a site", true),
		siteEnabledCommand("disable", "Turn the style off for a site", false),
		siteActionCommand("exclude", "Never style a site", messaging.ActionExcludeSite, "%s excluded"),
		siteActionCommand("include", "Remove a site from the exclusion list", messaging.ActionRemoveExcludedSite, "%s no longer excluded"),
		siteActionCommand("remove", "Forget the overrides of a site", messaging.ActionRemoveSite, "%s now follows the defaults"),
	)
}

func runSiteGet(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	view, err := app.Client.GetSettings(app.Ctx(), args[0])
	if err != nil {
		return report(app, err)
	}
	if outputJSON {
		return printJSON(view)
	}
	fmt.Println(app.Renderer.RenderSiteView(url.NormalizeSite(args[0]), view))
	return nil
}

func runSiteSet(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	req := messaging.UpdateSettingsRequest{Site: args[0]}
	flags := cmd.Flags()
	if flags.Changed("font-size") {
		req.FontSize = &siteFontSize
	}
	if flags.Changed("spacing") {
		req.Spacing = &siteSpacing
	}
	if flags.Changed("line-height") {
		req.LineHeight = &siteLineHeight
	}
	if flags.Changed("force") {
		req.Force = &siteForce
	}
	if req.FontSize == nil && req.Spacing == nil && req.LineHeight == nil && req.Force == nil {
		return fmt.Errorf("nothing to change: pass --font-size, --spacing, --line-height or --force")
	}

	if err := app.Client.UpdateSettings(app.Ctx(), req); err != nil {
		return report(app, err)
	}
	fmt.Println(app.Renderer.RenderSuccess(fmt.Sprintf("%s updated", url.NormalizeSite(args[0]))))
	return nil
}

func siteEnabledCommand(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <site>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := requireApp()
			if err != nil {
				return err
			}
			if err := app.Client.SetSiteEnabled(app.Ctx(), args[0], enabled); err != nil {
				return report(app, err)
			}
			fmt.Println(app.Renderer.RenderToggle(url.NormalizeSite(args[0]), enabled))
			return nil
		},
	}
}

func siteActionCommand(use, short, action, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <site>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			app, err := requireApp()
			if err != nil {
				return err
			}
			if err := app.Client.SiteAction(app.Ctx(), action, args[0]); err != nil {
				return report(app, err)
			}
			fmt.Println(app.Renderer.RenderSuccess(fmt.Sprintf(done, url.NormalizeSite(args[0]))))
			return nil
		},
	}
}
