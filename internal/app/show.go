package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

const displayTimeLayout = "2006-01-02 15:04:05"

// Show prints the most recently inserted price records.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	if a.Config.Database.DSN == "" {
		return errors.New("database not configured; cannot show prices")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	records, err := store.ListRecentPrices(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "no price records found")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tProduct\tBrand\tList\tStart\tEnd\tPrio\tPrice")

	for _, record := range records {
		fmt.Fprintf(
			writer,
			"%d\t%d\t%s\t%d\t%s\t%s\t%d\t%s %s\n",
			record.ID,
			record.ProductID,
			record.Brand.Name,
			record.PriceList,
			record.Window.Start.Format(displayTimeLayout),
			record.Window.End.Format(displayTimeLayout),
			record.Priority,
			formatDecimal(record.Price.Amount, 2),
			record.Price.Currency,
		)
	}

	writer.Flush()
	return nil
}

func formatDecimal(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}
