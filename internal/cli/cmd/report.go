package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/legible/internal/cli"
	"github.com/bnema/legible/internal/infrastructure/httpapi"
)

// errReported marks an error already printed to the user.
var errReported = errors.New("error already reported")

var outputJSON bool

// report prints err in the CLI style and returns errReported so the process
// exits non-zero without printing it twice.
func report(app *cli.App, err error) error {
	if errors.Is(err, httpapi.ErrDaemonUnavailable) {
		fmt.Fprintln(os.Stderr, app.Renderer.RenderDaemonDown(app.Client.BaseURL(), err))
	} else {
		fmt.Fprintln(os.Stderr, app.Renderer.RenderError(err))
	}
	return errReported
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print raw JSON instead of styled output")
}
