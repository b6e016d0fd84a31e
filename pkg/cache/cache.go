package cache

import (
	"time"

	"github.com/mselser95/order-economics/pkg/types"
)

// Cache holds market descriptors fetched from the market-data collaborator.
type Cache interface {
	// GetMarket returns (market, true) if the id is cached.
	GetMarket(id string) (*types.Market, bool)

	// SetMarket stores a market under its ID with a TTL.
	// Returns false if the cache rejected the write.
	SetMarket(market *types.Market, ttl time.Duration) bool

	// Delete removes a market from the cache.
	Delete(id string)

	// Clear removes all markets from the cache.
	Clear()

	// Close closes the cache and releases resources.
	Close()
}
