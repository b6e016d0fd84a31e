package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderSide is the direction of an order.
type OrderSide string

const (
	// SideBuy opens or extends a long position.
	SideBuy OrderSide = "buy"
	// SideSell opens or extends a short position.
	SideSell OrderSide = "sell"
)

// ParseSide accepts "buy" and "sell" (case-insensitive).
func ParseSide(s string) (OrderSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return SideBuy, nil
	case "sell":
		return SideSell, nil
	default:
		return "", fmt.Errorf("unknown order side %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *OrderSide) UnmarshalText(text []byte) error {
	parsed, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OpeningOrder is an order that opens or adds to a position.
// FeeRate is a fraction (0.02 = 2%).
type OpeningOrder struct {
	NumShares  decimal.Decimal
	LimitPrice decimal.Decimal
	Side       OrderSide
	FeeRate    decimal.Decimal
}

// EconomicsResult is the potential outcome of an opening order.
type EconomicsResult struct {
	PotentialProfit        decimal.Decimal `json:"potentialProfit"`
	PotentialLoss          decimal.Decimal `json:"potentialLoss"`
	PotentialProfitPercent decimal.Decimal `json:"potentialProfitPercent"`
	PotentialLossPercent   decimal.Decimal `json:"potentialLossPercent"`
	TradingFees            decimal.Decimal `json:"tradingFees"`
}

// ClosePosition describes the liquidation of an existing position.
type ClosePosition struct {
	CurrentPrice  decimal.Decimal
	Side          OrderSide
	Bounds        MarketBounds
	NumShares     decimal.Decimal
	PurchasePrice decimal.Decimal
	FeeRate       decimal.Decimal
}

// CloseResult is the realized outcome of a position close.
type CloseResult struct {
	RealizedProfit decimal.Decimal `json:"realizedProfit"`
	TradingFees    decimal.Decimal `json:"tradingFees"`
}
