package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/mselser95/order-economics/pkg/types"
	"go.uber.org/zap"
)

// RistrettoCache is a Cache backed by Ristretto.
type RistrettoCache struct {
	cache  *ristretto.Cache
	logger *zap.Logger
}

// RistrettoConfig holds configuration for Ristretto cache.
type RistrettoConfig struct {
	MaxMarkets  int64 // Maximum number of markets kept (each costs 1)
	BufferItems int64 // Number of keys per Get buffer
	Logger      *zap.Logger
}

// NewRistrettoCache creates a new Ristretto-backed market cache.
func NewRistrettoCache(cfg *RistrettoConfig) (*RistrettoCache, error) {
	bufferItems := cfg.BufferItems
	if bufferItems <= 0 {
		bufferItems = 64
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.MaxMarkets * 10, // Ristretto recommends 10x max items
		MaxCost:     cfg.MaxMarkets,
		BufferItems: bufferItems,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{
		cache:  cache,
		logger: cfg.Logger,
	}, nil
}

func marketKey(id string) string {
	return "market:" + id
}

// GetMarket retrieves a market from the cache.
func (r *RistrettoCache) GetMarket(id string) (*types.Market, bool) {
	value, found := r.cache.Get(marketKey(id))
	if !found {
		CacheMissesTotal.Inc()
		r.logger.Debug("cache-miss", zap.String("market-id", id))
		return nil, false
	}

	market, ok := value.(*types.Market)
	if !ok {
		// Foreign value under our key; treat as a miss and drop it.
		r.cache.Del(marketKey(id))
		CacheMissesTotal.Inc()
		return nil, false
	}

	CacheHitsTotal.Inc()
	r.logger.Debug("cache-hit", zap.String("market-id", id))
	return market, true
}

// SetMarket stores a market with a TTL.
func (r *RistrettoCache) SetMarket(market *types.Market, ttl time.Duration) bool {
	if market == nil || market.ID == "" {
		return false
	}

	success := r.cache.SetWithTTL(marketKey(market.ID), market, 1, ttl)
	if success {
		CacheSetsTotal.Inc()
		r.logger.Debug("cache-set",
			zap.String("market-id", market.ID),
			zap.Duration("ttl", ttl))
	}
	return success
}

// Delete removes a market from the cache.
func (r *RistrettoCache) Delete(id string) {
	r.cache.Del(marketKey(id))
	CacheDeletesTotal.Inc()
	r.logger.Debug("cache-delete", zap.String("market-id", id))
}

// Clear removes all markets from the cache.
func (r *RistrettoCache) Clear() {
	r.cache.Clear()
	r.logger.Info("cache-cleared")
}

// Close closes the cache and releases resources.
func (r *RistrettoCache) Close() {
	r.cache.Close()
	r.logger.Info("cache-closed")
}

// Metrics returns Ristretto's internal metrics.
func (r *RistrettoCache) Metrics() *ristretto.Metrics {
	return r.cache.Metrics
}

// Wait blocks until all pending writes have been applied.
func (r *RistrettoCache) Wait() {
	r.cache.Wait()
}
