package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"lvr-ingest/internal/adapters/httpapi"
	"lvr-ingest/internal/adapters/lvrfetcher"
	postgres_adapter "lvr-ingest/internal/adapters/postgres"
	"lvr-ingest/internal/configs"
	"lvr-ingest/internal/constants"
	"lvr-ingest/internal/core/usecase"
	"lvr-ingest/pkg/postgres"
)

// App wires the whole service together. This is the composition root: every
// adapter and use case is constructed and connected here, nowhere else.
type App struct {
	config *configs.AppConfig
	dbPool *pgxpool.Pool
	log    zerolog.Logger

	ingestUseCase *usecase.IngestSeasonUseCase
	apiHandler    *httpapi.Handler
}

// NewApp loads configuration and builds the dependency graph.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	logger.Info().Msg("connected to PostgreSQL pool")

	storageAdapter, err := postgres_adapter.NewPostgresStorageAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
	}

	fetcherAdapter := lvrfetcher.NewLVRFetcherAdapter(
		appConfig.LVR.BaseURL,
		appConfig.LVR.UserAgent,
		appConfig.LVR.FetchTimeout,
		logger,
	)

	ingestUseCase := usecase.NewIngestSeasonUseCase(
		fetcherAdapter,
		storageAdapter,
		constants.GetRegionCatalog(),
		appConfig.LVR.RegionDelay,
		logger,
	)

	apiHandler := httpapi.NewHandler(storageAdapter, ingestUseCase, logger)

	return &App{
		config:        appConfig,
		dbPool:        dbPool,
		log:           logger,
		ingestUseCase: ingestUseCase,
		apiHandler:    apiHandler,
	}, nil
}

// RunIngest executes one ingestion pass and returns the number of newly
// inserted records.
func (a *App) RunIngest(ctx context.Context, seasonOverride string, year, quarter int) (int, error) {
	return a.ingestUseCase.Execute(ctx, seasonOverride, year, quarter)
}

// RunServer serves the reporting API until the listener fails or the
// process exits.
func (a *App) RunServer() error {
	a.log.Info().Str("addr", a.config.HTTP.Addr).Msg("serving reporting API")
	srv := &http.Server{
		Addr:              a.config.HTTP.Addr,
		Handler:           a.apiHandler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Close releases the database pool.
func (a *App) Close() {
	a.dbPool.Close()
}
