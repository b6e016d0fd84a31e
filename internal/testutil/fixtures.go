package testutil

import (
	"time"

	"github.com/mselser95/order-economics/pkg/types"
	"github.com/shopspring/decimal"
)

// Market ids used across tests. They are valid, already-checksummed addresses.
const (
	BinaryMarketID = "0x1111111111111111111111111111111111111111"
	ScalarMarketID = "0x2222222222222222222222222222222222222222"
)

// CreateBinaryMarket creates a yes/no market with the given fee rate.
func CreateBinaryMarket(id string, feeRate string) *types.Market {
	return &types.Market{
		ID:       id,
		Question: "Will it rain tomorrow?",
		Topology: types.TopologyBinary,
		MinPrice: decimal.Zero,
		MaxPrice: decimal.NewFromInt(1),
		FeeRate:  decimal.RequireFromString(feeRate),
		EndTime:  time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CreateScalarMarket creates a scalar market with the given bounds and fee rate.
func CreateScalarMarket(id string, minPrice, maxPrice, feeRate string) *types.Market {
	return &types.Market{
		ID:       id,
		Question: "What will the temperature be?",
		Topology: types.TopologyScalar,
		MinPrice: decimal.RequireFromString(minPrice),
		MaxPrice: decimal.RequireFromString(maxPrice),
		FeeRate:  decimal.RequireFromString(feeRate),
		EndTime:  time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}
