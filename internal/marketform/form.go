// Package marketform holds the state of the market-creation form.
//
// A Form is an ordinary value owned by the caller. Update returns a new form
// and never mutates its argument.
package marketform

import (
	"strings"

	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/pkg/types"
	"github.com/shopspring/decimal"
)

// ReviewStep is the step at which the form is reviewed before submission.
const ReviewStep = 5

// Default values for a new form.
//
//nolint:gochecknoglobals // read-only defaults
var (
	TradingFeeDefault       = decimal.NewFromInt(1)
	MakerFeeDefault         = decimal.RequireFromString("0.5")
	InitialLiquidityDefault = decimal.NewFromInt(500)
	InitialFairPriceDefault = decimal.RequireFromString("0.5")
	SharesPerOrderDefault   = decimal.NewFromInt(10)
	SizeOfBestDefault       = decimal.NewFromInt(100)
	PriceWidthDefault       = decimal.RequireFromString("0.1")
	SeparationDefault       = decimal.RequireFromString("0.01")
)

//nolint:gochecknoglobals // read-only constant
var hundred = decimal.NewFromInt(100)

// Form is the market-creation form state.
type Form struct {
	Step    int               `json:"step"`
	Errors  map[string]string `json:"errors"`
	IsValid bool              `json:"isValid"`

	Topology types.MarketTopology `json:"type"`
	MinPrice decimal.Decimal      `json:"minPrice"`
	MaxPrice decimal.Decimal      `json:"maxPrice"`

	// TradingFeePercent is kept as entered ("1.5" or "1.5%") until the review step.
	TradingFeePercent string          `json:"tradingFeePercent"`
	MakerFeePercent   decimal.Decimal `json:"makerFeePercent"`
	InitialLiquidity  decimal.Decimal `json:"initialLiquidity"`

	DefaultFairPrice  decimal.Decimal   `json:"defaultFairPrice"`
	InitialFairPrices []decimal.Decimal `json:"initialFairPrice"`
	SharesPerOrder    decimal.Decimal   `json:"sharesPerOrder"`
	SizeOfBest        decimal.Decimal   `json:"sizeOfBest"`
	PriceWidth        decimal.Decimal   `json:"priceWidth"`
	Separation        decimal.Decimal   `json:"separation"`

	Volume *decimal.Decimal `json:"volume,omitempty"`
}

// Values is a partial form update. Nil fields leave the form unchanged.
type Values struct {
	Step              *int                  `json:"step,omitempty"`
	Topology          *types.MarketTopology `json:"type,omitempty"`
	MinPrice          *decimal.Decimal      `json:"minPrice,omitempty"`
	MaxPrice          *decimal.Decimal      `json:"maxPrice,omitempty"`
	TradingFeePercent *string               `json:"tradingFeePercent,omitempty"`
	MakerFeePercent   *decimal.Decimal      `json:"makerFeePercent,omitempty"`
	InitialLiquidity  *decimal.Decimal      `json:"initialLiquidity,omitempty"`
	DefaultFairPrice  *decimal.Decimal      `json:"defaultFairPrice,omitempty"`
	InitialFairPrices []decimal.Decimal     `json:"initialFairPrice,omitempty"`
	SharesPerOrder    *decimal.Decimal      `json:"sharesPerOrder,omitempty"`
	SizeOfBest        *decimal.Decimal      `json:"sizeOfBest,omitempty"`
	PriceWidth        *decimal.Decimal      `json:"priceWidth,omitempty"`
	Separation        *decimal.Decimal      `json:"separation,omitempty"`
	Volume            *decimal.Decimal      `json:"volume,omitempty"`
}

// New returns a form at step 1 populated with the defaults.
func New() Form {
	return Form{
		Step:              1,
		Errors:            map[string]string{},
		IsValid:           true,
		Topology:          types.TopologyBinary,
		MinPrice:          decimal.Zero,
		MaxPrice:          decimal.NewFromInt(1),
		TradingFeePercent: TradingFeeDefault.String(),
		MakerFeePercent:   MakerFeeDefault,
		InitialLiquidity:  InitialLiquidityDefault,
		DefaultFairPrice:  InitialFairPriceDefault,
		InitialFairPrices: []decimal.Decimal{},
		SharesPerOrder:    SharesPerOrderDefault,
		SizeOfBest:        SizeOfBestDefault,
		PriceWidth:        PriceWidthDefault,
		Separation:        SeparationDefault,
	}
}

// Update merges values into form and returns the result.
//
// When either the current form or the update is at the review step, the
// existing trading fee percent is normalised to its numeric value and the
// volume is reset to zero before the merge.
func Update(form Form, values Values) Form {
	next := form.clone()

	if next.Step == ReviewStep || (values.Step != nil && *values.Step == ReviewStep) {
		next.TradingFeePercent = normalizePercent(next.TradingFeePercent)
		zero := decimal.Zero
		next.Volume = &zero
	}

	if values.Step != nil {
		next.Step = *values.Step
	}
	if values.Topology != nil {
		next.Topology = *values.Topology
	}
	if values.MinPrice != nil {
		next.MinPrice = *values.MinPrice
	}
	if values.MaxPrice != nil {
		next.MaxPrice = *values.MaxPrice
	}
	if values.TradingFeePercent != nil {
		next.TradingFeePercent = *values.TradingFeePercent
	}
	if values.MakerFeePercent != nil {
		next.MakerFeePercent = *values.MakerFeePercent
	}
	if values.InitialLiquidity != nil {
		next.InitialLiquidity = *values.InitialLiquidity
	}
	if values.DefaultFairPrice != nil {
		next.DefaultFairPrice = *values.DefaultFairPrice
	}
	if values.InitialFairPrices != nil {
		next.InitialFairPrices = append([]decimal.Decimal(nil), values.InitialFairPrices...)
	}
	if values.SharesPerOrder != nil {
		next.SharesPerOrder = *values.SharesPerOrder
	}
	if values.SizeOfBest != nil {
		next.SizeOfBest = *values.SizeOfBest
	}
	if values.PriceWidth != nil {
		next.PriceWidth = *values.PriceWidth
	}
	if values.Separation != nil {
		next.Separation = *values.Separation
	}
	if values.Volume != nil {
		v := *values.Volume
		next.Volume = &v
	}

	return next
}

// Validate returns a copy of form with Errors and IsValid filled in.
func Validate(form Form) Form {
	next := form.clone()
	next.Errors = map[string]string{}

	fee, err := parsePercent(next.TradingFeePercent)
	switch {
	case err != nil:
		next.Errors["tradingFeePercent"] = "trading fee must be a number"
	case fee.IsNegative() || fee.GreaterThanOrEqual(hundred):
		next.Errors["tradingFeePercent"] = "trading fee must be at least 0% and below 100%"
	}

	if next.MakerFeePercent.IsNegative() || next.MakerFeePercent.GreaterThan(hundred) {
		next.Errors["makerFeePercent"] = "maker fee must be between 0% and 100%"
	}

	switch next.Topology {
	case types.TopologyBinary:
	case types.TopologyScalar:
		if !next.MaxPrice.GreaterThan(next.MinPrice) {
			next.Errors["maxPrice"] = "maximum price must exceed minimum price"
		}
	default:
		next.Errors["type"] = "market type must be binary or scalar"
	}

	if next.InitialLiquidity.IsNegative() {
		next.Errors["initialLiquidity"] = "initial liquidity cannot be negative"
	}

	next.IsValid = len(next.Errors) == 0
	return next
}

// FeeRate returns the trading fee as the fraction the calculator consumes.
func (f Form) FeeRate() (decimal.Decimal, error) {
	pct, err := parsePercent(f.TradingFeePercent)
	if err != nil {
		return decimal.Zero, err
	}
	return pct.Shift(-2), nil
}

// Bounds returns the market bounds the form describes.
func (f Form) Bounds() types.MarketBounds {
	if f.Topology == types.TopologyScalar {
		return types.ScalarBounds(f.MinPrice, f.MaxPrice)
	}
	return types.BinaryBounds()
}

func (f Form) clone() Form {
	next := f
	next.Errors = make(map[string]string, len(f.Errors))
	for k, v := range f.Errors {
		next.Errors[k] = v
	}
	next.InitialFairPrices = append([]decimal.Decimal(nil), f.InitialFairPrices...)
	if f.Volume != nil {
		v := *f.Volume
		next.Volume = &v
	}
	return next
}

func parsePercent(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return economics.ParseDecimal("tradingFeePercent", s)
}

// normalizePercent strips the percent sign. Unparseable input is left for Validate to report.
func normalizePercent(s string) string {
	pct, err := parsePercent(s)
	if err != nil {
		return s
	}
	return pct.String()
}
