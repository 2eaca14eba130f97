package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"price-resolution-api/internal/auth"
	"price-resolution-api/internal/config"
	"price-resolution-api/internal/httpapi"
	"price-resolution-api/internal/logging"
	"price-resolution-api/internal/pricing"
	"price-resolution-api/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logging.Component(logger, "app")}
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// candidateStore opens the configured backend: PostgreSQL when a DSN
// is set, otherwise an in-memory store preloaded with the sample
// tariffs.
func (a *App) candidateStore(ctx context.Context) (pricing.CandidateStore, func(), error) {
	if a.Config.Database.DSN == "" {
		a.Logger.Warn().Msg("database.dsn not configured; serving sample data from memory")
		mem := storage.NewMemoryStore()
		for _, record := range storage.SampleRecords() {
			mem.Add(record)
		}
		return mem, func() {}, nil
	}

	store, closer, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return store, closer, nil
}

// Serve runs the HTTP service until interrupted.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.candidateStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	authSvc, err := auth.NewService(a.Config.Auth)
	if err != nil {
		return err
	}

	resolver := pricing.NewResolver(store)
	server := httpapi.NewServer(resolver, authSvc, a.Logger)

	httpServer := &http.Server{
		Addr:         a.Config.Server.Addr,
		Handler:      server.Router(),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", httpServer.Addr).Msg("http server listening")
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down http server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	a.Logger.Info().Msg("http server stopped")
	return nil
}

// SeedOptions configure the seed command.
type SeedOptions struct {
	SchemaOnly bool
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// ExportOptions hold parameters for exporting a product's tariffs.
type ExportOptions struct {
	ProductID  int64
	BrandID    int64
	PNGPath    string
	CSVPath    string
	MaxRecords int
}
