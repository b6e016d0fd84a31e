package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/internal/markets"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/mselser95/order-economics/internal/storage"
	"github.com/mselser95/order-economics/pkg/config"
	"github.com/mselser95/order-economics/pkg/httpserver"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute the economics of an opening order",
	Long: `Computes potential profit, potential loss, their percentages and the
trading fee of an order that opens or extends a position.

Omitted bounds, market type and fee rate are resolved from --market.

Examples:
  # Binary market, inline
  go run . quote --shares 10 --price 0.4 --side buy --min 0 --max 1 --fee 0.02

  # Scalar market resolved from the market-data API
  go run . quote --market 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed --shares 10 --price 1 --side sell

  # JSON output
  go run . quote --shares 10 --price 0.4 --side buy --min 0 --max 1 --fee 0.02 --format json`,
	RunE: runQuote,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(quoteCmd)
	addOpeningFlags(quoteCmd.Flags())
}

func addOpeningFlags(fs *pflag.FlagSet) {
	addCommonFlags(fs)
	fs.String("price", "", "Limit price")
}

func addCommonFlags(fs *pflag.FlagSet) {
	fs.String("market", "", "Market id; supplies any omitted bounds, type and fee rate")
	fs.String("shares", "", "Number of shares")
	fs.String("side", "", "Order side: buy or sell")
	fs.String("min", "", "Minimum market price")
	fs.String("max", "", "Maximum market price")
	fs.String("type", "", "Market type: binary or scalar")
	fs.String("fee", "", "Trading fee rate as a fraction (0.02 = 2%)")
	fs.String("format", "table", "Output format: table, json")
}

// flagArg returns the flag's value, or nil when the flag was not given.
func flagArg(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}

func openingInputFromFlags(fs *pflag.FlagSet) economics.OpeningInput {
	return economics.OpeningInput{
		NumShares:  flagArg(fs, "shares"),
		LimitPrice: flagArg(fs, "price"),
		Side:       flagArg(fs, "side"),
		MinPrice:   flagArg(fs, "min"),
		MaxPrice:   flagArg(fs, "max"),
		Topology:   flagArg(fs, "type"),
		FeeRate:    flagArg(fs, "fee"),
	}
}

func runQuote(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()
	marketID, _ := fs.GetString("market")
	format, _ := fs.GetString("format")

	svc, cleanup, err := newCLIQuoteService(marketID)
	if err != nil {
		return err
	}
	defer cleanup()

	q, err := svc.QuoteOpening(cmd.Context(), quote.OpeningRequest{
		MarketID: marketID,
		Input:    openingInputFromFlags(fs),
	})
	if err != nil {
		return describeQuoteError(err)
	}

	return writeQuote(cmd.OutOrStdout(), q, format)
}

// newCLIQuoteService builds a journal-less quote service. A market-data client
// is only configured when a market id was given.
func newCLIQuoteService(marketID string) (*quote.Service, func(), error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	cleanup := func() {
		_ = logger.Sync()
	}

	qcfg := quote.Config{
		Cutoff: cfg.MarketCutoff,
		Logger: logger,
	}
	if marketID != "" {
		qcfg.Markets = markets.NewCachedMetadataClient(
			markets.NewMetadataClient(cfg.MarketDataURL, cfg.MarketDataTimeout), nil, 0)
		logger.Debug("market-lookup-enabled", zap.String("market-data-url", cfg.MarketDataURL))
	}

	return quote.New(qcfg), cleanup, nil
}

func describeQuoteError(err error) error {
	if economics.IsRejection(err) {
		return fmt.Errorf("no result (%s): %w", economics.Reason(err), err)
	}
	return fmt.Errorf("quote: %w", err)
}

func writeQuote(w io.Writer, q *quote.Quote, format string) error {
	switch format {
	case "table":
		return storage.PrintQuote(w, q)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(httpserver.NewQuoteResponse(q))
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}
