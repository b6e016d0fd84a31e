package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mselser95/order-economics/internal/quote"
	"go.uber.org/zap"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// ConsoleStorage implements Storage by pretty-printing to console.
type ConsoleStorage struct {
	out    io.Writer
	logger *zap.Logger
}

// NewConsoleStorage creates a new console storage writing to stdout.
func NewConsoleStorage(logger *zap.Logger) *ConsoleStorage {
	return NewConsoleStorageWriter(os.Stdout, logger)
}

// NewConsoleStorageWriter creates a console storage writing to out.
func NewConsoleStorageWriter(out io.Writer, logger *zap.Logger) *ConsoleStorage {
	logger.Info("console-storage-initialized")
	return &ConsoleStorage{
		out:    out,
		logger: logger,
	}
}

// StoreQuote pretty-prints a quote.
func (c *ConsoleStorage) StoreQuote(ctx context.Context, q *quote.Quote) error {
	return PrintQuote(c.out, q)
}

// PrintQuote writes the human-readable quote report to w.
func PrintQuote(w io.Writer, q *quote.Quote) error {
	p := &printer{w: w}

	p.line("\n" + rule)
	if q.Kind == quote.KindClose {
		p.printf("📉 POSITION CLOSE QUOTE\n")
	} else {
		p.printf("📈 ORDER QUOTE\n")
	}
	p.line(rule)
	p.printf("ID:       %s\n", shortID(q.ID))
	if q.MarketID != "" {
		p.printf("Market:   %s\n", q.MarketID)
	}
	p.printf("Time:     %s\n", q.CreatedAt.Format("2006-01-02 15:04:05"))
	p.line(rule)
	p.printf("📊 ORDER\n")
	p.printf("  Side:           %s\n", q.Side)
	p.printf("  Shares:         %s\n", q.NumShares.String())
	if q.Kind == quote.KindClose {
		p.printf("  Purchase Price: %s\n", q.PurchasePrice.String())
		p.printf("  Current Price:  %s\n", q.Price.String())
	} else {
		p.printf("  Limit Price:    %s\n", q.Price.String())
	}
	p.printf("  Range:          [%s, %s] (%s)\n",
		q.Bounds.MinPrice.String(), q.Bounds.MaxPrice.String(), q.Bounds.Topology)
	p.printf("  Fee Rate:       %s\n", q.FeeRate.String())
	p.line(rule)
	p.printf("💰 ECONOMICS\n")
	if q.Opening != nil {
		p.printf("  Potential Profit: %s (%s%%)\n",
			q.Opening.PotentialProfit.String(), q.Opening.PotentialProfitPercent.StringFixed(2))
		p.printf("  Potential Loss:   %s (%s%%)\n",
			q.Opening.PotentialLoss.String(), q.Opening.PotentialLossPercent.String())
	}
	if q.Close != nil {
		p.printf("  Realized Profit:  %s\n", q.Close.RealizedProfit.String())
	}
	p.printf("  Trading Fees:     %s (%s wei)\n", q.TradingFees().String(), q.TradingFeesWei().String())
	if q.NegativeProfit {
		p.printf("  ❌ NO PROFIT after fees\n")
	} else {
		p.printf("  ✅ PROFITABLE after fees\n")
	}
	if q.PastCutoff {
		p.printf("  ⚠️  Market ends after the configured cutoff\n")
	}
	p.line(rule)

	return p.err
}

// Close is a no-op for console storage.
func (c *ConsoleStorage) Close() error {
	c.logger.Info("closing-console-storage")
	return nil
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
