package cli

import (
	"github.com/spf13/cobra"

	"price-resolution-api/internal/app"
)

var seedSchemaOnly bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema and load the sample tariff set",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.SeedOptions{
			SchemaOnly: seedSchemaOnly,
		}
		return getApp().Seed(cmd.Context(), opts)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedSchemaOnly, "schema-only", false, "Create tables without inserting sample data")
}
