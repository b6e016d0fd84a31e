package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/mselser95/order-economics/pkg/healthprobe"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Quoter computes order economics.
type Quoter interface {
	QuoteOpening(ctx context.Context, req quote.OpeningRequest) (*quote.Quote, error)
	QuoteClose(ctx context.Context, req quote.CloseRequest) (*quote.Quote, error)
}

// Server provides HTTP endpoints for quotes, metrics and health checks.
type Server struct {
	server        *http.Server
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
}

// Config holds server configuration.
type Config struct {
	Port          string
	Logger        *zap.Logger
	HealthChecker *healthprobe.HealthChecker
	Quotes        Quoter // optional; quote routes are mounted only when set

	WSReadTimeout     time.Duration
	WSMaxMessageBytes int64
}

// New creates a new HTTP server.
func New(cfg *Config) *Server {
	return &Server{
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:        cfg.Logger,
		healthChecker: cfg.HealthChecker,
	}
}

// NewRouter builds the route table.
func NewRouter(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", cfg.HealthChecker.Health())
	r.Get("/ready", cfg.HealthChecker.Ready())

	r.Route("/api", func(r chi.Router) {
		// The stream is long-lived, so the request timeout only covers the plain routes.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Post("/market-form", HandleMarketForm)

			if cfg.Quotes != nil {
				qh := NewQuoteHandler(cfg.Quotes, cfg.Logger)
				r.Post("/quotes/open", qh.HandleOpen)
				r.Post("/quotes/close", qh.HandleClose)
			}
		})

		if cfg.Quotes != nil {
			sh := NewStreamHandler(cfg.Quotes, cfg.Logger, cfg.WSReadTimeout, cfg.WSMaxMessageBytes)
			r.Get("/quotes/stream", sh.HandleStream)
		}
	})

	return r
}

// Start starts the HTTP server.
// This is a blocking call that returns when the server stops or encounters an error.
func (s *Server) Start() error {
	s.logger.Info("http-server-starting", zap.String("addr", s.server.Addr))

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http-server-shutting-down")

	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("http-server-shutdown-complete")
	return nil
}
