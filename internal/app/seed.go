package app

import (
	"context"
	"errors"
)

// Seed creates the schema and loads the sample tariff set.
func (a *App) Seed(ctx context.Context, opts SeedOptions) error {
	if a.Config.Database.DSN == "" {
		return errors.New("database not configured; cannot seed")
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	if opts.SchemaOnly {
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		a.Logger.Info().Msg("schema ensured")
		return nil
	}

	inserted, err := store.SeedSampleData(ctx)
	if err != nil {
		return err
	}
	if inserted == 0 {
		a.Logger.Info().Msg("prices table not empty; seed skipped")
		return nil
	}

	a.Logger.Info().Int("records", inserted).Msg("sample data seeded")
	return nil
}
