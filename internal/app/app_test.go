package app

import (
	"context"
	"testing"
	"time"

	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/mselser95/order-economics/internal/storage"
	"github.com/mselser95/order-economics/internal/testutil"
	"github.com/mselser95/order-economics/pkg/config"
	"github.com/mselser95/order-economics/pkg/healthprobe"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(marketDataURL string) *config.Config {
	return &config.Config{
		LogLevel:          "info",
		HTTPPort:          "0",
		MarketDataURL:     marketDataURL,
		MarketDataTimeout: time.Second,
		MarketCacheTTL:    time.Minute,
		MarketCacheSize:   100,
		MarketCutoff:      time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC),
		WSReadTimeout:     time.Second,
		WSMaxMessageBytes: 4096,
		StorageMode:       "none",
	}
}

func TestNew_QuotesThroughCachedMarketData(t *testing.T) {
	api := testutil.NewMockMarketDataAPI(
		testutil.CreateScalarMarket(testutil.ScalarMarketID, "-5", "10", "0.25"),
	)
	defer api.Close()

	a, err := New(testConfig(api.URL), zap.NewNop())
	require.NoError(t, err)
	defer a.Shutdown()

	req := quote.OpeningRequest{
		MarketID: testutil.ScalarMarketID,
		Input: economics.OpeningInput{
			NumShares:  economics.Arg("10"),
			LimitPrice: economics.Arg("1"),
			Side:       economics.Arg("buy"),
		},
	}

	q, err := a.Quotes().QuoteOpening(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, q.Opening.PotentialProfit.Equal(decimal.RequireFromString("52.5")))
	assert.True(t, q.PastCutoff, "scalar fixture ends after the configured cutoff")
	assert.Equal(t, 1, api.Hits())

	a.marketCache.Wait()

	_, err = a.Quotes().QuoteOpening(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, api.Hits(), "second quote should be served from the market cache")
}

func TestNew_InvalidCacheSize(t *testing.T) {
	cfg := testConfig("http://localhost:9001")
	cfg.MarketCacheSize = 0

	_, err := New(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestSetupStorage(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		wantErr bool
		check   func(t *testing.T, s quote.Storage)
	}{
		{
			name: "console",
			mode: "console",
			check: func(t *testing.T, s quote.Storage) {
				assert.IsType(t, &storage.ConsoleStorage{}, s)
			},
		},
		{
			name: "none",
			mode: "none",
			check: func(t *testing.T, s quote.Storage) {
				assert.Nil(t, s)
			},
		},
		{
			name:    "postgres-unreachable",
			mode:    "postgres",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("http://localhost:9001")
			cfg.StorageMode = tt.mode
			cfg.PostgresHost = "127.0.0.1"
			cfg.PostgresPort = "1"
			cfg.PostgresSSL = "disable"

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			s, err := setupStorage(ctx, cfg, zap.NewNop(), healthprobe.New())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestShutdown(t *testing.T) {
	a, err := New(testConfig("http://localhost:9001"), zap.NewNop())
	require.NoError(t, err)

	a.startComponents()
	a.healthChecker.SetReady(true)

	require.NoError(t, a.Shutdown())
	assert.Error(t, a.ctx.Err())
}
