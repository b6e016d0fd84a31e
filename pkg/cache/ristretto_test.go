package cache

import (
	"testing"
	"time"

	"github.com/mselser95/order-economics/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func testMarket(id string) *types.Market {
	return &types.Market{
		ID:       id,
		Question: "Will it rain?",
		Topology: types.TopologyBinary,
		MinPrice: decimal.Zero,
		MaxPrice: decimal.NewFromInt(1),
		FeeRate:  decimal.RequireFromString("0.01"),
	}
}

func TestRistrettoCache(t *testing.T) {
	cache, err := NewRistrettoCache(&RistrettoConfig{
		MaxMarkets:  100,
		BufferItems: 64,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	defer cache.Close()

	t.Run("set-and-get", func(t *testing.T) {
		market := testMarket("0xabc")

		if !cache.SetMarket(market, time.Hour) {
			t.Error("expected SetMarket to succeed")
		}
		cache.Wait()

		got, found := cache.GetMarket("0xabc")
		if !found {
			t.Fatal("expected market to be found")
		}
		if got != market {
			t.Errorf("expected same market pointer back, got %+v", got)
		}
	})

	t.Run("get-missing-market", func(t *testing.T) {
		_, found := cache.GetMarket("0xmissing")
		if found {
			t.Error("expected market to not be found")
		}
	})

	t.Run("reject-nil-and-empty-id", func(t *testing.T) {
		if cache.SetMarket(nil, time.Hour) {
			t.Error("expected nil market to be rejected")
		}
		if cache.SetMarket(&types.Market{}, time.Hour) {
			t.Error("expected market without ID to be rejected")
		}
	})

	t.Run("delete", func(t *testing.T) {
		cache.SetMarket(testMarket("0xdelete"), time.Hour)
		cache.Wait()

		if _, found := cache.GetMarket("0xdelete"); !found {
			t.Fatal("expected market to exist before delete")
		}

		cache.Delete("0xdelete")

		if _, found := cache.GetMarket("0xdelete"); found {
			t.Error("expected market to be deleted")
		}
	})

	t.Run("ttl-expiration", func(t *testing.T) {
		cache.SetMarket(testMarket("0xttl"), 200*time.Millisecond)
		cache.Wait()

		if _, found := cache.GetMarket("0xttl"); !found {
			t.Error("expected market to exist before TTL expires")
		}

		time.Sleep(300 * time.Millisecond)

		if _, found := cache.GetMarket("0xttl"); found {
			t.Error("expected market to be expired after TTL")
		}
	})

	t.Run("clear", func(t *testing.T) {
		cache.SetMarket(testMarket("0xclear1"), time.Hour)
		cache.SetMarket(testMarket("0xclear2"), time.Hour)
		cache.Wait()

		_, found1 := cache.GetMarket("0xclear1")
		_, found2 := cache.GetMarket("0xclear2")
		if !found1 || !found2 {
			t.Skip("Ristretto probabilistic admission - some keys not admitted")
		}

		cache.Clear()

		_, found1 = cache.GetMarket("0xclear1")
		_, found2 = cache.GetMarket("0xclear2")
		if found1 || found2 {
			t.Error("expected all markets to be cleared")
		}
	})
}

func TestNewRistrettoCache_InvalidSize(t *testing.T) {
	_, err := NewRistrettoCache(&RistrettoConfig{
		MaxMarkets: 0,
		Logger:     zap.NewNop(),
	})
	if err == nil {
		t.Error("expected error for zero-sized cache")
	}
}
