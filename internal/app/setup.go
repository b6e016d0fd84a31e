package app

import (
	"context"
	"fmt"

	"github.com/mselser95/order-economics/internal/markets"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/mselser95/order-economics/internal/storage"
	"github.com/mselser95/order-economics/pkg/cache"
	"github.com/mselser95/order-economics/pkg/config"
	"github.com/mselser95/order-economics/pkg/healthprobe"
	"github.com/mselser95/order-economics/pkg/httpserver"
	"go.uber.org/zap"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := setupHealthChecker()

	marketCache, err := setupCache(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	marketSource := setupMarketSource(cfg, marketCache)

	quoteStorage, err := setupStorage(ctx, cfg, logger, healthChecker)
	if err != nil {
		marketCache.Close()
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	quotes := quote.New(quote.Config{
		Markets: marketSource,
		Storage: quoteStorage,
		Cutoff:  cfg.MarketCutoff,
		Logger:  logger,
	})

	httpServer := setupHTTPServer(cfg, logger, healthChecker, quotes)

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		marketCache:   marketCache,
		marketSource:  marketSource,
		quotes:        quotes,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupHTTPServer(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	quotes *quote.Service,
) *httpserver.Server {
	return httpserver.New(&httpserver.Config{
		Port:              cfg.HTTPPort,
		Logger:            logger,
		HealthChecker:     healthChecker,
		Quotes:            quotes,
		WSReadTimeout:     cfg.WSReadTimeout,
		WSMaxMessageBytes: cfg.WSMaxMessageBytes,
	})
}

func setupCache(cfg *config.Config, logger *zap.Logger) (*cache.RistrettoCache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		MaxMarkets:  cfg.MarketCacheSize,
		BufferItems: 64,
		Logger:      logger,
	})
}

func setupMarketSource(cfg *config.Config, marketCache cache.Cache) *markets.CachedMetadataClient {
	metadataClient := markets.NewMetadataClient(cfg.MarketDataURL, cfg.MarketDataTimeout)
	return markets.NewCachedMetadataClient(metadataClient, marketCache, cfg.MarketCacheTTL)
}

// setupStorage returns the quote journal selected by StorageMode.
// "none" returns a nil journal; quotes are then only logged.
func setupStorage(
	ctx context.Context,
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
) (quote.Storage, error) {
	switch cfg.StorageMode {
	case "postgres":
		pgStorage, err := storage.NewPostgresStorage(ctx, &storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		healthChecker.AddCheck("postgres", pgStorage.Ping)
		return pgStorage, nil
	case "none":
		logger.Info("quote-journal-disabled")
		return nil, nil
	default:
		return storage.NewConsoleStorage(logger), nil
	}
}
