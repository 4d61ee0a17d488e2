package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/bnema/legible/internal/domain/entity"
)

const exportFilePerm = 0o644

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the settings record to a file",
	Long: `Export the whole settings record as TOML (default) or JSON.

Examples:
  legible export > legible-settings.toml
  legible export --format json --output settings.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the settings record from a file",
	Long: `Import a record written by 'legible export'. JSON and TOML are both
accepted. Site names are normalized and the record is validated before it
replaces the current one.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "toml or json (default from the output extension, else toml)")
}

func runExport(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	s, err := app.Client.GetAllSettings(app.Ctx())
	if err != nil {
		return report(app, err)
	}

	format := exportFormat
	if format == "" {
		format = "toml"
		if strings.EqualFold(filepath.Ext(exportOutput), ".json") {
			format = "json"
		}
	}
	data, err := encodeSettings(s, format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, exportFilePerm); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Println(app.Renderer.RenderSuccess(fmt.Sprintf("exported %d sites to %s", len(s.SiteSettings), exportOutput)))
	return nil
}

func runImport(_ *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	s, err := decodeSettings(data)
	if err != nil {
		return err
	}

	if err := app.Client.ImportSettings(app.Ctx(), s); err != nil {
		return report(app, err)
	}
	fmt.Println(app.Renderer.RenderSuccess(fmt.Sprintf("imported %d sites, %d excluded", len(s.SiteSettings), len(s.ExcludeSites))))
	return nil
}

func encodeSettings(s *entity.Settings, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case "toml":
		data, err := toml.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use: toml, json)", format)
	}
}

// decodeSettings reads an exported record. Keys missing from the file take
// their factory value.
func decodeSettings(data []byte) (*entity.Settings, error) {
	s := entity.DefaultSettings()
	if gjson.ValidBytes(data) {
		if err := json.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return s, nil
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return s, nil
}
