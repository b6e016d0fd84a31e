package httpserver

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/mselser95/order-economics/pkg/types"
)

// Field is a raw order-entry value. It decodes from a JSON string or number;
// a missing or null field leaves the pointer nil.
type Field string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*f = Field(s)
		return nil
	}
	if len(data) == 0 || data[0] == '{' || data[0] == '[' {
		return fmt.Errorf("field must be a string or number, got %s", data)
	}
	*f = Field(data)
	return nil
}

func (f *Field) arg() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}

// OpenRequest is the body of POST /api/quotes/open.
type OpenRequest struct {
	MarketID   string `json:"marketId,omitempty"`
	NumShares  *Field `json:"numShares"`
	LimitPrice *Field `json:"limitPrice"`
	Side       *Field `json:"side"`
	MinPrice   *Field `json:"minPrice"`
	MaxPrice   *Field `json:"maxPrice"`
	Type       *Field `json:"type"`
	FeeRate    *Field `json:"feeRate"`
}

func (r OpenRequest) toQuote() quote.OpeningRequest {
	return quote.OpeningRequest{
		MarketID: r.MarketID,
		Input: economics.OpeningInput{
			NumShares:  r.NumShares.arg(),
			LimitPrice: r.LimitPrice.arg(),
			Side:       r.Side.arg(),
			MinPrice:   r.MinPrice.arg(),
			MaxPrice:   r.MaxPrice.arg(),
			Topology:   r.Type.arg(),
			FeeRate:    r.FeeRate.arg(),
		},
	}
}

// CloseRequest is the body of POST /api/quotes/close.
type CloseRequest struct {
	MarketID      string `json:"marketId,omitempty"`
	CurrentPrice  *Field `json:"currentPrice"`
	Side          *Field `json:"side"`
	MinPrice      *Field `json:"minPrice"`
	MaxPrice      *Field `json:"maxPrice"`
	Type          *Field `json:"type"`
	NumShares     *Field `json:"numShares"`
	PurchasePrice *Field `json:"purchasePrice"`
	FeeRate       *Field `json:"feeRate"`
}

func (r CloseRequest) toQuote() quote.CloseRequest {
	return quote.CloseRequest{
		MarketID: r.MarketID,
		Input: economics.CloseInput{
			CurrentPrice:  r.CurrentPrice.arg(),
			Side:          r.Side.arg(),
			MinPrice:      r.MinPrice.arg(),
			MaxPrice:      r.MaxPrice.arg(),
			Topology:      r.Type.arg(),
			NumShares:     r.NumShares.arg(),
			PurchasePrice: r.PurchasePrice.arg(),
			FeeRate:       r.FeeRate.arg(),
		},
	}
}

// QuoteResponse is the JSON form of a computed quote.
type QuoteResponse struct {
	ID             string                 `json:"id"`
	Kind           quote.Kind             `json:"kind"`
	MarketID       string                 `json:"marketId,omitempty"`
	Side           types.OrderSide        `json:"side"`
	NumShares      string                 `json:"numShares"`
	Price          string                 `json:"price"`
	PurchasePrice  string                 `json:"purchasePrice,omitempty"`
	MinPrice       string                 `json:"minPrice"`
	MaxPrice       string                 `json:"maxPrice"`
	Type           types.MarketTopology   `json:"type"`
	FeeRate        string                 `json:"feeRate"`
	Opening        *types.EconomicsResult `json:"opening,omitempty"`
	Close          *types.CloseResult     `json:"close,omitempty"`
	TradingFeesWei string                 `json:"tradingFeesWei"`
	NegativeProfit bool                   `json:"negativeProfit"`
	PastCutoff     bool                   `json:"pastCutoff"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// NewQuoteResponse converts a quote into its JSON form.
func NewQuoteResponse(q *quote.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:             q.ID,
		Kind:           q.Kind,
		MarketID:       q.MarketID,
		Side:           q.Side,
		NumShares:      q.NumShares.String(),
		Price:          q.Price.String(),
		MinPrice:       q.Bounds.MinPrice.String(),
		MaxPrice:       q.Bounds.MaxPrice.String(),
		Type:           q.Bounds.Topology,
		FeeRate:        q.FeeRate.String(),
		Opening:        q.Opening,
		Close:          q.Close,
		TradingFeesWei: q.TradingFeesWei().String(),
		NegativeProfit: q.NegativeProfit,
		PastCutoff:     q.PastCutoff,
		CreatedAt:      q.CreatedAt,
	}
	if q.Kind == quote.KindClose {
		resp.PurchasePrice = q.PurchasePrice.String()
	}
	return resp
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}
