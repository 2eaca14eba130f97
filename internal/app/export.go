package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"price-resolution-api/internal/pricing"
)

// Export renders a product's tariff windows as CSV and/or PNG.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}
	if opts.ProductID <= 0 || opts.BrandID <= 0 {
		return errors.New("--product and --brand must be positive")
	}
	if a.Config.Database.DSN == "" {
		return errors.New("database not configured; cannot export")
	}

	opts.MaxRecords = a.Config.ResolveMaxRecords(opts.MaxRecords)

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.FindCandidates(ctx, opts.ProductID, opts.BrandID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		a.Logger.Info().
			Int64("product_id", opts.ProductID).
			Int64("brand_id", opts.BrandID).
			Msg("no price records found for export")
		return nil
	}
	if len(records) > opts.MaxRecords {
		records = records[:opts.MaxRecords]
	}

	a.Logger.Info().Int("records", len(records)).Msg("exporting price records")

	if opts.CSVPath != "" {
		if err := writePricesCSV(opts.CSVPath, records); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writePricesPNG(opts.PNGPath, records); err != nil {
			return err
		}
	}

	return nil
}

func writePricesCSV(path string, records []pricing.PriceRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"id", "product_id", "brand_id", "price_list", "start_date", "end_date", "priority", "price", "currency"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		row := []string{
			fmt.Sprintf("%d", record.ID),
			fmt.Sprintf("%d", record.ProductID),
			fmt.Sprintf("%d", record.BrandID),
			fmt.Sprintf("%d", record.PriceList),
			record.Window.Start.Format(displayTimeLayout),
			record.Window.End.Format(displayTimeLayout),
			fmt.Sprintf("%d", record.Priority),
			record.Price.Amount.StringFixed(2),
			record.Price.Currency,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// writePricesPNG draws each tariff as a horizontal segment spanning
// its validity window at its price level.
func writePricesPNG(path string, records []pricing.PriceRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}

	series := make([]chart.Series, 0, len(records))
	for _, record := range records {
		amount := record.Price.Amount.InexactFloat64()
		series = append(series, chart.TimeSeries{
			Name:    fmt.Sprintf("list %d (priority %d)", record.PriceList, record.Priority),
			XValues: []time.Time{record.Window.Start, record.Window.End},
			YValues: []float64{amount, amount},
		})
	}

	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Price",
			ValueFormatter: priceFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
