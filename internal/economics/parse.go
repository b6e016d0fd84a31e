package economics

import (
	"strings"

	"github.com/mselser95/order-economics/pkg/types"
	"github.com/shopspring/decimal"
)

// Arg wraps a literal as a present input field.
func Arg(s string) *string {
	return &s
}

// Limits on parsed input. Arithmetic rescales operands to a common exponent,
// so an unbounded exponent turns a short literal into an enormous integer.
const (
	MaxExponent = 64
	MaxDigits   = 64
)

// ParseDecimal parses free-text numeric input. Surrounding whitespace is ignored;
// anything else that is not a plain decimal or exponent literal is rejected, as is
// any value whose exponent or digit count is outside MaxExponent and MaxDigits.
func ParseDecimal(field, input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, &FieldError{Field: field, Input: input, Err: ErrUnparseableNumber}
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Input: input, Err: ErrUnparseableNumber}
	}

	if !WithinLimits(d) {
		return decimal.Zero, &FieldError{Field: field, Input: input, Err: ErrUnparseableNumber}
	}

	return d, nil
}

// WithinLimits reports whether d is small enough to take part in arithmetic.
func WithinLimits(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxExponent || exp < -MaxExponent {
		return false
	}
	return d.NumDigits() <= MaxDigits
}

// OpeningInput is the raw order-entry state for an opening order.
// A nil field means the value is absent.
type OpeningInput struct {
	NumShares  *string
	LimitPrice *string
	Side       *string
	MinPrice   *string
	MaxPrice   *string
	Topology   *string // optional
	FeeRate    *string
}

// CloseInput is the raw state for closing a position.
type CloseInput struct {
	CurrentPrice  *string
	Side          *string
	MinPrice      *string
	MaxPrice      *string
	Topology      *string // optional
	NumShares     *string
	PurchasePrice *string
	FeeRate       *string
}

type namedArg struct {
	name  string
	value *string
}

// requireArgs is the arity check: it runs before any parsing.
func requireArgs(args ...namedArg) error {
	for _, a := range args {
		if a.value == nil {
			return &FieldError{Field: a.name, Err: ErrMissingArgument}
		}
	}
	return nil
}

// fieldParser keeps the first parse failure so callers can parse a list of fields
// without checking after every one.
type fieldParser struct {
	err error
}

func (p *fieldParser) decimal(field string, input *string) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	d, err := ParseDecimal(field, *input)
	if err != nil {
		p.err = err
	}
	return d
}

func (p *fieldParser) side(input *string) types.OrderSide {
	if p.err != nil {
		return ""
	}
	side, err := types.ParseSide(*input)
	if err != nil {
		p.err = &FieldError{Field: "side", Input: *input, Err: ErrInvalidSide}
	}
	return side
}

func (p *fieldParser) bounds(minInput, maxInput, topologyInput *string) types.MarketBounds {
	minPrice := p.decimal("minPrice", minInput)
	maxPrice := p.decimal("maxPrice", maxInput)
	if p.err != nil {
		return types.MarketBounds{}
	}

	var topology types.MarketTopology
	if topologyInput != nil {
		parsed, err := types.ParseTopology(*topologyInput)
		if err != nil {
			p.err = &FieldError{Field: "topology", Input: *topologyInput, Err: ErrInvalidTopology}
			return types.MarketBounds{}
		}
		topology = parsed
	} else {
		topology = inferTopology(minPrice, maxPrice)
	}

	bounds := types.MarketBounds{MinPrice: minPrice, MaxPrice: maxPrice, Topology: topology}
	p.err = validateBounds(bounds)
	return bounds
}

func inferTopology(minPrice, maxPrice decimal.Decimal) types.MarketTopology {
	binary := types.BinaryBounds()
	if minPrice.Equal(binary.MinPrice) && maxPrice.Equal(binary.MaxPrice) {
		return types.TopologyBinary
	}
	return types.TopologyScalar
}

// Parse validates the raw input and converts it into an order and market bounds.
func (in OpeningInput) Parse() (types.OpeningOrder, types.MarketBounds, error) {
	err := requireArgs(
		namedArg{"numShares", in.NumShares},
		namedArg{"limitPrice", in.LimitPrice},
		namedArg{"side", in.Side},
		namedArg{"minPrice", in.MinPrice},
		namedArg{"maxPrice", in.MaxPrice},
		namedArg{"feeRate", in.FeeRate},
	)
	if err != nil {
		return types.OpeningOrder{}, types.MarketBounds{}, err
	}

	p := &fieldParser{}
	order := types.OpeningOrder{
		NumShares:  p.decimal("numShares", in.NumShares),
		LimitPrice: p.decimal("limitPrice", in.LimitPrice),
		Side:       p.side(in.Side),
		FeeRate:    p.decimal("feeRate", in.FeeRate),
	}
	bounds := p.bounds(in.MinPrice, in.MaxPrice, in.Topology)
	if p.err != nil {
		return types.OpeningOrder{}, types.MarketBounds{}, p.err
	}

	return order, bounds, nil
}

// Parse validates the raw input and converts it into a position close.
func (in CloseInput) Parse() (types.ClosePosition, error) {
	err := requireArgs(
		namedArg{"currentPrice", in.CurrentPrice},
		namedArg{"side", in.Side},
		namedArg{"minPrice", in.MinPrice},
		namedArg{"maxPrice", in.MaxPrice},
		namedArg{"numShares", in.NumShares},
		namedArg{"purchasePrice", in.PurchasePrice},
		namedArg{"feeRate", in.FeeRate},
	)
	if err != nil {
		return types.ClosePosition{}, err
	}

	p := &fieldParser{}
	pos := types.ClosePosition{
		CurrentPrice:  p.decimal("currentPrice", in.CurrentPrice),
		Side:          p.side(in.Side),
		NumShares:     p.decimal("numShares", in.NumShares),
		PurchasePrice: p.decimal("purchasePrice", in.PurchasePrice),
		FeeRate:       p.decimal("feeRate", in.FeeRate),
	}
	pos.Bounds = p.bounds(in.MinPrice, in.MaxPrice, in.Topology)
	if p.err != nil {
		return types.ClosePosition{}, p.err
	}

	return pos, nil
}

// CalcOrderProfitLoss parses raw order-entry state and computes its economics.
// The result is nil whenever err is non-nil.
func CalcOrderProfitLoss(in OpeningInput) (*types.EconomicsResult, error) {
	order, bounds, err := in.Parse()
	if err != nil {
		return nil, err
	}
	return ComputeOpening(order, bounds)
}

// CalcCloseProfitLoss parses raw position state and computes the close economics.
// The result is nil whenever err is non-nil.
func CalcCloseProfitLoss(in CloseInput) (*types.CloseResult, error) {
	pos, err := in.Parse()
	if err != nil {
		return nil, err
	}
	return ComputeClose(pos)
}
