package quote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// QuotesTotal tracks successfully computed quotes by kind.
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_economics_quotes_total",
			Help: "Total number of computed quotes",
		},
		[]string{"kind"},
	)

	// QuotesRejectedTotal tracks inputs the calculator rejected, by reason.
	QuotesRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_economics_quotes_rejected_total",
			Help: "Total number of quote requests rejected by the calculator",
		},
		[]string{"kind", "reason"},
	)

	// NegativeProfitQuotesTotal tracks quotes whose profit is zero or negative after fees.
	NegativeProfitQuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_economics_negative_profit_quotes_total",
			Help: "Total number of quotes with non-positive profit after fees",
		},
		[]string{"kind"},
	)

	// QuoteDurationSeconds tracks quote latency including market lookup.
	QuoteDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_economics_quote_duration_seconds",
			Help:    "Duration of quote computation including market lookup",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"kind"},
	)

	// MarketLookupErrorsTotal tracks failed market resolutions.
	MarketLookupErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_economics_market_lookup_errors_total",
		Help: "Total number of failed market lookups",
	})

	// StoreErrorsTotal tracks quote journal failures.
	StoreErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_economics_quote_store_errors_total",
		Help: "Total number of quotes that failed to journal",
	})
)
