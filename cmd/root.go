package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "order-economics",
	Short: "Prediction-market order economics calculator",
	Long: `Computes the potential profit, potential loss, percentages and trading fee
of a prediction-market order before it is placed, and the realized profit
of closing an existing position.

Binary markets trade in [0, 1]; scalar markets trade between their own
minimum and maximum prices. Bounds and fee rate may be given inline or
resolved from the market-data API by market id.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
