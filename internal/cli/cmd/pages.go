package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/cli/styles"
)

var pagesHTMLFile string

var toggleCmd = &cobra.Command{
	Use:   "toggle <page-id>",
	Short: "Toggle the style for the site of an open page",
	Long: `Flip the effective on/off state of the site shown in a page, the way
the keyboard shortcut does.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		resp, err := app.Client.ToggleFont(app.Ctx(), port.PageID(args[0]))
		if err != nil {
			return report(app, err)
		}
		if outputJSON {
			return printJSON(resp)
		}
		fmt.Println(app.Renderer.RenderToggle(resp.Site, resp.Enabled))
		return nil
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List and manage pages hosted by the daemon",
	Args:  cobra.NoArgs,
	RunE:  runPagesList,
}

var pagesOpenCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open a page",
	Long: `Register a page with the daemon. Its markup comes from --html or
defaults to an empty document. The page is styled once loaded.`,
	Args: cobra.ExactArgs(1),
	RunE: runPagesOpen,
}

var pagesLoadCmd = &cobra.Command{
	Use:   "load <page-id>",
	Short: "Finish loading a page so it receives the style",
	Args:  cobra.ExactArgs(1),
	RunE:  runPagesLoad,
}

var pagesCloseCmd = &cobra.Command{
	Use:   "close <page-id>",
	Short: "Close a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		if err := app.Client.ClosePage(app.Ctx(), port.PageID(args[0])); err != nil {
			return report(app, err)
		}
		fmt.Println(app.Renderer.RenderSuccess("page closed"))
		return nil
	},
}

var pagesDocumentCmd = &cobra.Command{
	Use:   "document <page-id>",
	Short: "Print the current markup of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app, err := requireApp()
		if err != nil {
			return err
		}
		doc, err := app.Client.Document(app.Ctx(), port.PageID(args[0]))
		if err != nil {
			return report(app, err)
		}
		fmt.Println(doc)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd, pagesCmd)
	pagesCmd.AddCommand(pagesOpenCmd, pagesLoadCmd, pagesCloseCmd, pagesDocumentCmd)
	pagesOpenCmd.Flags().StringVar(&pagesHTMLFile, "html", "", "file holding the page markup")
}

func runPagesList(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	pages, err := app.Client.ListPages(app.Ctx())
	if err != nil {
		return report(app, err)
	}
	if outputJSON {
		return printJSON(pages)
	}
	if len(pages) == 0 {
		fmt.Println(app.Renderer.RenderInfo("no open pages"))
		return nil
	}
	fmt.Println(styles.PagesTable(pages))
	return nil
}

func runPagesOpen(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	var markup string
	if pagesHTMLFile != "" {
		data, err := os.ReadFile(pagesHTMLFile)
		if err != nil {
			return fmt.Errorf("read markup: %w", err)
		}
		markup = string(data)
	}

	info, err := app.Client.OpenPage(app.Ctx(), args[0], markup)
	if err != nil {
		return report(app, err)
	}
	if outputJSON {
		return printJSON(info)
	}
	fmt.Println(app.Renderer.RenderSuccess(fmt.Sprintf("opened %s as %s", info.URL, info.ID)))
	return nil
}

func runPagesLoad(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	resp, err := app.Client.LoadPage(app.Ctx(), port.PageID(args[0]))
	if err != nil {
		return report(app, err)
	}
	if outputJSON {
		return printJSON(resp)
	}
	if resp.PushError != "" {
		fmt.Println(app.Renderer.RenderWarning(fmt.Sprintf("page %s loaded, style push failed: %s", resp.PageID, resp.PushError)))
		return nil
	}
	fmt.Println(app.Renderer.RenderSuccess(fmt.Sprintf("page %s loaded, style %s", resp.PageID, resp.State)))
	return nil
}
