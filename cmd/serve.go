package cmd

import (
	"fmt"

	"github.com/mselser95/order-economics/internal/app"
	"github.com/mselser95/order-economics/pkg/config"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quote service",
	Long: `Starts the HTTP quote service, which exposes:
  POST /api/quotes/open     opening-order economics
  POST /api/quotes/close    position-close economics
  GET  /api/quotes/stream   live quotes over a websocket
  POST /api/market-form     market-creation form updates
  GET  /metrics, /health, /ready

Configuration is read from the environment (and .env when present).`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
