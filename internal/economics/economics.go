// Package economics computes the profit, loss and fee of prediction-market orders.
//
// All arithmetic uses shopspring/decimal. Nothing here keeps state between calls,
// so every function is safe for concurrent use.
package economics

import (
	"fmt"

	"github.com/mselser95/order-economics/pkg/types"
	"github.com/shopspring/decimal"
)

// PercentPrecision is the number of decimal places kept when a percentage
// requires a non-terminating division.
const PercentPrecision int32 = 18

//nolint:gochecknoglobals // read-only constant
var hundred = decimal.NewFromInt(100)

// TradingFees returns feeRate * numShares * (maxPrice - minPrice).
// The fee is charged on the full width of the price range, not on the capital at risk.
func TradingFees(feeRate, numShares decimal.Decimal, bounds types.MarketBounds) decimal.Decimal {
	return feeRate.Mul(numShares).Mul(bounds.PriceRange())
}

// Margin returns the pre-fee capital at risk for an opening order.
func Margin(order types.OpeningOrder, bounds types.MarketBounds) (decimal.Decimal, error) {
	switch order.Side {
	case types.SideBuy:
		return order.LimitPrice.Sub(bounds.MinPrice).Mul(order.NumShares), nil
	case types.SideSell:
		return bounds.MaxPrice.Sub(order.LimitPrice).Mul(order.NumShares), nil
	default:
		return decimal.Zero, &FieldError{Field: "side", Input: string(order.Side), Err: ErrInvalidSide}
	}
}

// GrossProfit returns the pre-fee profit if the market settles in the order's favour.
func GrossProfit(order types.OpeningOrder, bounds types.MarketBounds) (decimal.Decimal, error) {
	switch order.Side {
	case types.SideBuy:
		return bounds.MaxPrice.Sub(order.LimitPrice).Mul(order.NumShares), nil
	case types.SideSell:
		return order.LimitPrice.Sub(bounds.MinPrice).Mul(order.NumShares), nil
	default:
		return decimal.Zero, &FieldError{Field: "side", Input: string(order.Side), Err: ErrInvalidSide}
	}
}

// ComputeOpening computes the potential economics of an order that opens or
// extends a position. Topology never changes the algebra; it only decides which
// bounds the caller supplies.
//
// PotentialLossPercent is always 100: the margin is by definition all of the
// capital at risk before fees, and fees are already subtracted in PotentialLoss.
func ComputeOpening(order types.OpeningOrder, bounds types.MarketBounds) (*types.EconomicsResult, error) {
	err := validateBounds(bounds)
	if err != nil {
		return nil, err
	}

	margin, err := Margin(order, bounds)
	if err != nil {
		return nil, err
	}

	grossProfit, err := GrossProfit(order, bounds)
	if err != nil {
		return nil, err
	}

	fees := TradingFees(order.FeeRate, order.NumShares, bounds)
	profit := grossProfit.Sub(fees)
	loss := margin.Sub(fees)

	// Limit price sitting exactly on a bound leaves nothing at risk.
	profitPercent := decimal.Zero
	if !margin.IsZero() {
		profitPercent = profit.Mul(hundred).DivRound(margin, PercentPrecision)
	}

	return &types.EconomicsResult{
		PotentialProfit:        profit,
		PotentialLoss:          loss,
		PotentialProfitPercent: profitPercent,
		PotentialLossPercent:   hundred,
		TradingFees:            fees,
	}, nil
}

// ComputeClose computes the realized profit and fee of liquidating a position at
// the current price. The side does not flip the sign of the realized profit.
func ComputeClose(pos types.ClosePosition) (*types.CloseResult, error) {
	err := validateBounds(pos.Bounds)
	if err != nil {
		return nil, err
	}

	if pos.Side != types.SideBuy && pos.Side != types.SideSell {
		return nil, &FieldError{Field: "side", Input: string(pos.Side), Err: ErrInvalidSide}
	}

	fees := TradingFees(pos.FeeRate, pos.NumShares, pos.Bounds)
	realized := pos.CurrentPrice.Sub(pos.PurchasePrice).Mul(pos.NumShares).Sub(fees)

	return &types.CloseResult{
		RealizedProfit: realized,
		TradingFees:    fees,
	}, nil
}

func validateBounds(bounds types.MarketBounds) error {
	if !bounds.Valid() {
		return fmt.Errorf("%w: maxPrice %s must exceed minPrice %s",
			ErrInvalidBounds, bounds.MaxPrice.String(), bounds.MinPrice.String())
	}
	return nil
}
