// Package app wires the order-economics service together.
package app

import (
	"context"
	"sync"

	"github.com/mselser95/order-economics/internal/markets"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/mselser95/order-economics/pkg/cache"
	"github.com/mselser95/order-economics/pkg/config"
	"github.com/mselser95/order-economics/pkg/healthprobe"
	"github.com/mselser95/order-economics/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	marketCache   *cache.RistrettoCache
	marketSource  *markets.CachedMetadataClient
	quotes        *quote.Service
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Quotes returns the quote service.
func (a *App) Quotes() *quote.Service {
	return a.quotes
}
