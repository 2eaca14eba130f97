package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"price-resolution-api/internal/pricing"
)

const seedTimeLayout = "2006-01-02 15:04:05"

// SampleBrand is the brand shipped with the sample tariff set.
var SampleBrand = pricing.Brand{
	ID:          1,
	Name:        "Zara",
	Description: "Marca de moda del grupo",
}

// SampleRecords returns the reference tariff set for product 35455:
// one base tariff at priority 0 covering the second half of 2020 and
// three promotional overlays at priority 1.
func SampleRecords() []pricing.PriceRecord {
	return []pricing.PriceRecord{
		sampleRecord(1, "2020-06-14 00:00:00", "2020-12-31 23:59:59", 0, "35.50"),
		sampleRecord(2, "2020-06-14 15:00:00", "2020-06-14 18:30:00", 1, "25.45"),
		sampleRecord(3, "2020-06-15 00:00:00", "2020-06-15 11:00:00", 1, "30.50"),
		sampleRecord(4, "2020-06-15 16:00:00", "2020-12-31 23:59:59", 1, "38.95"),
	}
}

func sampleRecord(priceList int, start, end string, priority int, amount string) pricing.PriceRecord {
	return pricing.PriceRecord{
		ProductID: 35455,
		BrandID:   SampleBrand.ID,
		Brand:     SampleBrand,
		PriceList: priceList,
		Window: pricing.ValidityWindow{
			Start: mustParseSeedTime(start),
			End:   mustParseSeedTime(end),
		},
		Priority: priority,
		Price: pricing.Money{
			Amount:   decimal.RequireFromString(amount),
			Currency: "EUR",
		},
	}
}

func mustParseSeedTime(value string) time.Time {
	parsed, err := time.Parse(seedTimeLayout, value)
	if err != nil {
		panic(fmt.Sprintf("seed timestamp %q: %v", value, err))
	}
	return parsed
}

// SeedSampleData creates the schema when needed and loads the sample
// brand and tariff set. Existing price rows are left untouched; the
// seed is skipped when the prices table is non-empty.
func (s *Store) SeedSampleData(ctx context.Context) (int, error) {
	if err := s.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	count, err := s.CountPrices(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	if err := s.UpsertBrand(ctx, SampleBrand); err != nil {
		return 0, err
	}

	inserted := 0
	for _, record := range SampleRecords() {
		if _, err := s.InsertPrice(ctx, record); err != nil {
			return inserted, fmt.Errorf("seed price list %d: %w", record.PriceList, err)
		}
		inserted++
	}
	return inserted, nil
}
