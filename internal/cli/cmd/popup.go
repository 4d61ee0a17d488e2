package cmd

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/cli/model"
	"github.com/bnema/legible/internal/domain/url"
)

var popupPage string

var popupCmd = &cobra.Command{
	Use:   "popup [site]",
	Short: "Adjust the style of one site interactively",
	Long: `Open an interactive panel for one site: turn the style on or off, force
it, tune font size, letter spacing and line height, or exclude the site.
Changes apply to open pages as you make them.

The site is given as a host or URL, or taken from an open page with --page.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPopup,
}

func init() {
	rootCmd.AddCommand(popupCmd)
	popupCmd.Flags().StringVarP(&popupPage, "page", "p", "", "use the site of this open page")
}

func runPopup(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var site string
	switch {
	case popupPage != "":
		pages, err := app.Client.ListPages(app.Ctx())
		if err != nil {
			return report(app, err)
		}
		i := slices.IndexFunc(pages, func(p port.PageInfo) bool { return p.ID == port.PageID(popupPage) })
		if i < 0 {
			return fmt.Errorf("page %s is not open", popupPage)
		}
		site = url.NormalizeSite(pages[i].URL)
	case len(args) == 1:
		site = url.NormalizeSite(args[0])
	}
	if site == "" {
		return fmt.Errorf("a site or --page is required")
	}

	m := model.NewPopupModel(app.Ctx(), app.Theme, model.PopupModelConfig{
		Site:     site,
		Client:   app.Client,
		Debounce: app.Config.Popup.Debounce(),
	})
	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run popup: %w", err)
	}
	return nil
}
