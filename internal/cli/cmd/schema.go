package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/legible/internal/infrastructure/config"
)

var schemaWrite bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema describing config.toml. With --write the schema
is written next to the config file, where editors pick it up.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if !schemaWrite {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		app, err := requireApp()
		if err != nil {
			return err
		}
		path, err := config.GetSchemaFile()
		if err != nil {
			return err
		}
		if err := config.GenerateSchemaFile(path); err != nil {
			return report(app, err)
		}
		fmt.Println(app.Renderer.RenderSuccess("schema written to " + path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().BoolVarP(&schemaWrite, "write", "w", false, "write the schema next to the config file")
}
