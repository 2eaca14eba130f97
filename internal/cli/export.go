package cli

import (
	"github.com/spf13/cobra"

	"price-resolution-api/internal/app"
)

var (
	exportProductID int64
	exportBrandID   int64
	exportCSVPath   string
	exportPNGPath   string
	exportMax       int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a product's tariff windows as CSV and/or PNG",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			ProductID:  exportProductID,
			BrandID:    exportBrandID,
			CSVPath:    exportCSVPath,
			PNGPath:    exportPNGPath,
			MaxRecords: exportMax,
		}
		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().Int64Var(&exportProductID, "product", 0, "Product identifier")
	exportCmd.Flags().Int64Var(&exportBrandID, "brand", 0, "Brand identifier")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Write records to this CSV file")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Render a tariff timeline to this PNG file")
	exportCmd.Flags().IntVar(&exportMax, "max-records", 0, "Override export.max_records from config")

	_ = exportCmd.MarkFlagRequired("product")
	_ = exportCmd.MarkFlagRequired("brand")
}
