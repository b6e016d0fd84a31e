package markets

import (
	"context"
	"time"

	"github.com/mselser95/order-economics/pkg/cache"
	"github.com/mselser95/order-economics/pkg/types"
)

// Fetcher fetches a market descriptor by id.
type Fetcher interface {
	FetchMarket(ctx context.Context, id string) (*types.Market, error)
}

// CachedMetadataClient wraps a Fetcher with caching.
type CachedMetadataClient struct {
	client Fetcher
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedMetadataClient creates a new cached metadata client.
// A nil cache disables caching.
func NewCachedMetadataClient(client Fetcher, c cache.Cache, ttl time.Duration) *CachedMetadataClient {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedMetadataClient{
		client: client,
		cache:  c,
		ttl:    ttl,
	}
}

// GetMarket returns the market descriptor, consulting the cache first.
func (c *CachedMetadataClient) GetMarket(ctx context.Context, id string) (*types.Market, error) {
	marketID, err := NormalizeMarketID(id)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if market, ok := c.cache.GetMarket(marketID); ok {
			MetadataCacheHitsTotal.Inc()
			return market, nil
		}
		MetadataCacheMissesTotal.Inc()
	}

	market, err := c.client.FetchMarket(ctx, marketID)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetMarket(market, c.ttl)
	}

	return market, nil
}

// Invalidate drops a market from the cache so the next lookup refetches it.
func (c *CachedMetadataClient) Invalidate(id string) {
	if c.cache == nil {
		return
	}
	marketID, err := NormalizeMarketID(id)
	if err != nil {
		return
	}
	c.cache.Delete(marketID)
}
