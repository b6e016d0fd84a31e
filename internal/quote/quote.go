package quote

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/params"
	"github.com/mselser95/order-economics/pkg/types"
	"github.com/shopspring/decimal"
)

// Kind distinguishes opening-order quotes from position-close quotes.
type Kind string

const (
	KindOpening Kind = "opening"
	KindClose   Kind = "close"
)

// Quote is a computed set of order economics together with the inputs that
// produced it.
type Quote struct {
	ID        string
	Kind      Kind
	MarketID  string // empty when bounds were supplied inline
	Side      types.OrderSide
	NumShares decimal.Decimal
	// Price is the limit price for opening quotes and the current price for closes.
	Price         decimal.Decimal
	PurchasePrice decimal.Decimal // close quotes only
	Bounds        types.MarketBounds
	FeeRate       decimal.Decimal

	Opening *types.EconomicsResult
	Close   *types.CloseResult

	// NegativeProfit is set when the potential or realized profit is <= 0.
	NegativeProfit bool
	// PastCutoff is set when the market ends after the configured cutoff.
	PastCutoff bool

	CreatedAt time.Time
}

// TradingFees returns the fee of whichever result the quote carries.
func (q *Quote) TradingFees() decimal.Decimal {
	switch {
	case q.Opening != nil:
		return q.Opening.TradingFees
	case q.Close != nil:
		return q.Close.TradingFees
	default:
		return decimal.Zero
	}
}

// Profit returns the potential (opening) or realized (close) profit.
func (q *Quote) Profit() decimal.Decimal {
	switch {
	case q.Opening != nil:
		return q.Opening.PotentialProfit
	case q.Close != nil:
		return q.Close.RealizedProfit
	default:
		return decimal.Zero
	}
}

// TradingFeesWei returns the trading fee in wei, truncated toward zero.
func (q *Quote) TradingFeesWei() *big.Int {
	return ToWei(q.TradingFees())
}

// String returns a human-readable summary of the quote.
func (q *Quote) String() string {
	return fmt.Sprintf(
		"Quote[%s] %s %s %s @ %s Range=[%s,%s] Profit=%s Fees=%s",
		shortID(q.ID),
		q.Kind,
		q.Side,
		q.NumShares.String(),
		q.Price.String(),
		q.Bounds.MinPrice.String(),
		q.Bounds.MaxPrice.String(),
		q.Profit().String(),
		q.TradingFees().String(),
	)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

//nolint:gochecknoglobals // read-only constant
var weiPerEther = decimal.New(params.Ether, 0)

// ToWei converts an ether-denominated amount into wei, truncated toward zero.
func ToWei(ether decimal.Decimal) *big.Int {
	return ether.Mul(weiPerEther).BigInt()
}
