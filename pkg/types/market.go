package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MarketTopology describes the shape of a market's outcome price space.
type MarketTopology string

const (
	// TopologyBinary is a yes/no market whose outcome prices live in [0, 1].
	TopologyBinary MarketTopology = "binary"
	// TopologyScalar is a market with arbitrary [minPrice, maxPrice] bounds.
	TopologyScalar MarketTopology = "scalar"
)

// ParseTopology accepts "binary", "yesNo" and "scalar" (case-insensitive).
func ParseTopology(s string) (MarketTopology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "yesno", "yes_no":
		return TopologyBinary, nil
	case "scalar":
		return TopologyScalar, nil
	default:
		return "", fmt.Errorf("unknown market topology %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *MarketTopology) UnmarshalText(text []byte) error {
	parsed, err := ParseTopology(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarketBounds holds the outcome price range of a market.
// MaxPrice must be strictly greater than MinPrice for any well-formed market.
type MarketBounds struct {
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Topology MarketTopology
}

// BinaryBounds returns the fixed [0, 1] bounds of a yes/no market.
func BinaryBounds() MarketBounds {
	return MarketBounds{
		MinPrice: decimal.Zero,
		MaxPrice: decimal.NewFromInt(1),
		Topology: TopologyBinary,
	}
}

// ScalarBounds returns bounds for a scalar market.
func ScalarBounds(minPrice, maxPrice decimal.Decimal) MarketBounds {
	return MarketBounds{
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Topology: TopologyScalar,
	}
}

// PriceRange returns MaxPrice - MinPrice.
func (b MarketBounds) PriceRange() decimal.Decimal {
	return b.MaxPrice.Sub(b.MinPrice)
}

// Valid reports whether MaxPrice > MinPrice.
func (b MarketBounds) Valid() bool {
	return b.MaxPrice.GreaterThan(b.MinPrice)
}

// Market is the metadata the order economics need from the market-data collaborator.
type Market struct {
	ID       string          `json:"id"`
	Question string          `json:"description"`
	Topology MarketTopology  `json:"marketType"`
	MinPrice decimal.Decimal `json:"minPrice"`
	MaxPrice decimal.Decimal `json:"maxPrice"`
	FeeRate  decimal.Decimal `json:"feeRate"`
	EndTime  time.Time       `json:"endTime"`
}

// Bounds derives the outcome price bounds. Binary markets always use [0, 1]
// regardless of what the collaborator reported.
func (m *Market) Bounds() MarketBounds {
	if m.Topology == TopologyBinary {
		return BinaryBounds()
	}
	return ScalarBounds(m.MinPrice, m.MaxPrice)
}

// IsPastCutoff reports whether the market ends after the given cutoff.
// A zero cutoff disables the check.
func (m *Market) IsPastCutoff(cutoff time.Time) bool {
	if cutoff.IsZero() || m.EndTime.IsZero() {
		return false
	}
	return m.EndTime.After(cutoff)
}
