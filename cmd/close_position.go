package cmd

import (
	"github.com/mselser95/order-economics/internal/economics"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

//nolint:gochecknoglobals // Cobra boilerplate
var closePositionCmd = &cobra.Command{
	Use:   "close-position",
	Short: "Compute the realized profit of closing a position",
	Long: `Computes the realized profit and trading fee of liquidating a position
at the current price:

  realized = (current - purchase) * shares - fee

The side is validated but does not change the sign of the result.

Examples:
  go run . close-position --shares 10 --purchase-price 0.25 --current 0.75 \
    --side sell --min 0 --max 1 --fee 0.2`,
	RunE: runClosePosition,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(closePositionCmd)
	addCloseFlags(closePositionCmd.Flags())
}

func addCloseFlags(fs *pflag.FlagSet) {
	addCommonFlags(fs)
	fs.String("current", "", "Current market price")
	fs.String("purchase-price", "", "Average purchase price of the position")
}

func closeInputFromFlags(fs *pflag.FlagSet) economics.CloseInput {
	return economics.CloseInput{
		CurrentPrice:  flagArg(fs, "current"),
		Side:          flagArg(fs, "side"),
		MinPrice:      flagArg(fs, "min"),
		MaxPrice:      flagArg(fs, "max"),
		Topology:      flagArg(fs, "type"),
		NumShares:     flagArg(fs, "shares"),
		PurchasePrice: flagArg(fs, "purchase-price"),
		FeeRate:       flagArg(fs, "fee"),
	}
}

func runClosePosition(cmd *cobra.Command, args []string) error {
	fs := cmd.Flags()
	marketID, _ := fs.GetString("market")
	format, _ := fs.GetString("format")

	svc, cleanup, err := newCLIQuoteService(marketID)
	if err != nil {
		return err
	}
	defer cleanup()

	q, err := svc.QuoteClose(cmd.Context(), quote.CloseRequest{
		MarketID: marketID,
		Input:    closeInputFromFlags(fs),
	})
	if err != nil {
		return describeQuoteError(err)
	}

	return writeQuote(cmd.OutOrStdout(), q, format)
}
