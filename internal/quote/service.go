// Package quote turns raw order-entry state into journaled order economics.
package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/pkg/types"
	"go.uber.org/zap"
)

// ErrNoMarketSource is returned when a request names a market but the service
// was built without a market-data collaborator.
var ErrNoMarketSource = errors.New("market lookup not configured")

// MarketSource resolves market descriptors by id.
type MarketSource interface {
	GetMarket(ctx context.Context, id string) (*types.Market, error)
}

// Storage is the interface for journaling quotes.
type Storage interface {
	StoreQuote(ctx context.Context, q *Quote) error
	Close() error
}

// OpeningRequest asks for the economics of an opening order.
// When MarketID is set, absent bounds, topology and fee rate are taken from the market.
type OpeningRequest struct {
	MarketID string
	Input    economics.OpeningInput
}

// CloseRequest asks for the economics of closing a position.
type CloseRequest struct {
	MarketID string
	Input    economics.CloseInput
}

// Config holds service configuration.
type Config struct {
	Markets MarketSource // optional
	Storage Storage      // optional
	Cutoff  time.Time    // zero disables the cutoff flag
	Logger  *zap.Logger
}

// Service computes and journals quotes.
type Service struct {
	markets MarketSource
	storage Storage
	cutoff  time.Time
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a new quote service.
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		markets: cfg.Markets,
		storage: cfg.Storage,
		cutoff:  cfg.Cutoff,
		logger:  logger,
		now:     time.Now,
	}
}

// QuoteOpening computes the potential economics of an opening order.
// Calculation rejections are returned as errors matching the economics sentinels.
func (s *Service) QuoteOpening(ctx context.Context, req OpeningRequest) (*Quote, error) {
	start := time.Now()
	defer func() {
		QuoteDurationSeconds.WithLabelValues(string(KindOpening)).Observe(time.Since(start).Seconds())
	}()

	in := req.Input
	market, err := s.resolveMarket(ctx, req.MarketID)
	if err != nil {
		return nil, err
	}
	if market != nil {
		in.MinPrice, in.MaxPrice, in.Topology, in.FeeRate = fillFromMarket(market, in.MinPrice, in.MaxPrice, in.Topology, in.FeeRate)
	}

	order, bounds, err := in.Parse()
	if err != nil {
		return nil, s.reject(KindOpening, req.MarketID, err)
	}

	result, err := economics.ComputeOpening(order, bounds)
	if err != nil {
		return nil, s.reject(KindOpening, req.MarketID, err)
	}

	q := &Quote{
		ID:             uuid.New().String(),
		Kind:           KindOpening,
		Side:           order.Side,
		NumShares:      order.NumShares,
		Price:          order.LimitPrice,
		Bounds:         bounds,
		FeeRate:        order.FeeRate,
		Opening:        result,
		NegativeProfit: !result.PotentialProfit.IsPositive(),
		CreatedAt:      s.now(),
	}
	s.attachMarket(q, market)
	s.record(ctx, q)

	return q, nil
}

// QuoteClose computes the realized economics of closing a position.
func (s *Service) QuoteClose(ctx context.Context, req CloseRequest) (*Quote, error) {
	start := time.Now()
	defer func() {
		QuoteDurationSeconds.WithLabelValues(string(KindClose)).Observe(time.Since(start).Seconds())
	}()

	in := req.Input
	market, err := s.resolveMarket(ctx, req.MarketID)
	if err != nil {
		return nil, err
	}
	if market != nil {
		in.MinPrice, in.MaxPrice, in.Topology, in.FeeRate = fillFromMarket(market, in.MinPrice, in.MaxPrice, in.Topology, in.FeeRate)
	}

	pos, err := in.Parse()
	if err != nil {
		return nil, s.reject(KindClose, req.MarketID, err)
	}

	result, err := economics.ComputeClose(pos)
	if err != nil {
		return nil, s.reject(KindClose, req.MarketID, err)
	}

	q := &Quote{
		ID:             uuid.New().String(),
		Kind:           KindClose,
		Side:           pos.Side,
		NumShares:      pos.NumShares,
		Price:          pos.CurrentPrice,
		PurchasePrice:  pos.PurchasePrice,
		Bounds:         pos.Bounds,
		FeeRate:        pos.FeeRate,
		Close:          result,
		NegativeProfit: !result.RealizedProfit.IsPositive(),
		CreatedAt:      s.now(),
	}
	s.attachMarket(q, market)
	s.record(ctx, q)

	return q, nil
}

// Close closes the quote journal.
func (s *Service) Close() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Close()
}

func (s *Service) resolveMarket(ctx context.Context, marketID string) (*types.Market, error) {
	if marketID == "" {
		return nil, nil
	}
	if s.markets == nil {
		return nil, ErrNoMarketSource
	}

	market, err := s.markets.GetMarket(ctx, marketID)
	if err != nil {
		MarketLookupErrorsTotal.Inc()
		s.logger.Warn("market-lookup-failed",
			zap.String("market-id", marketID),
			zap.Error(err))
		return nil, fmt.Errorf("get market: %w", err)
	}

	return market, nil
}

// fillFromMarket supplies bounds, topology and fee rate from the market for any
// field the caller left absent. Caller-supplied fields win.
func fillFromMarket(market *types.Market, minPrice, maxPrice, topology, feeRate *string) (*string, *string, *string, *string) {
	bounds := market.Bounds()
	if minPrice == nil {
		minPrice = economics.Arg(bounds.MinPrice.String())
	}
	if maxPrice == nil {
		maxPrice = economics.Arg(bounds.MaxPrice.String())
	}
	if topology == nil {
		topology = economics.Arg(string(bounds.Topology))
	}
	if feeRate == nil {
		feeRate = economics.Arg(market.FeeRate.String())
	}
	return minPrice, maxPrice, topology, feeRate
}

func (s *Service) attachMarket(q *Quote, market *types.Market) {
	if market == nil {
		return
	}
	q.MarketID = market.ID
	q.PastCutoff = market.IsPastCutoff(s.cutoff)
}

func (s *Service) reject(kind Kind, marketID string, err error) error {
	reason := economics.Reason(err)
	QuotesRejectedTotal.WithLabelValues(string(kind), reason).Inc()
	s.logger.Debug("quote-rejected",
		zap.String("kind", string(kind)),
		zap.String("market-id", marketID),
		zap.String("reason", reason),
		zap.Error(err))
	return err
}

func (s *Service) record(ctx context.Context, q *Quote) {
	QuotesTotal.WithLabelValues(string(q.Kind)).Inc()
	if q.NegativeProfit {
		NegativeProfitQuotesTotal.WithLabelValues(string(q.Kind)).Inc()
	}

	s.logger.Debug("quote-computed",
		zap.String("quote-id", q.ID),
		zap.String("kind", string(q.Kind)),
		zap.String("market-id", q.MarketID),
		zap.String("side", string(q.Side)),
		zap.String("profit", q.Profit().String()),
		zap.String("trading-fees", q.TradingFees().String()),
		zap.Bool("past-cutoff", q.PastCutoff))

	if s.storage == nil {
		return
	}

	err := s.storage.StoreQuote(ctx, q)
	if err != nil {
		StoreErrorsTotal.Inc()
		s.logger.Error("failed-to-store-quote",
			zap.String("quote-id", q.ID),
			zap.Error(err))
	}
}
