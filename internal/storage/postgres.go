package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mselser95/order-economics/internal/quote"
	"go.uber.org/zap"
)

// Schema creates the quote journal table. Decimal columns are NUMERIC so that
// amounts round-trip without float conversion.
const Schema = `
	CREATE TABLE IF NOT EXISTS order_quotes (
		id              UUID PRIMARY KEY,
		kind            TEXT NOT NULL,
		market_id       TEXT,
		side            TEXT NOT NULL,
		num_shares      NUMERIC NOT NULL,
		price           NUMERIC NOT NULL,
		purchase_price  NUMERIC,
		min_price       NUMERIC NOT NULL,
		max_price       NUMERIC NOT NULL,
		topology        TEXT NOT NULL,
		fee_rate        NUMERIC NOT NULL,
		profit          NUMERIC NOT NULL,
		loss            NUMERIC,
		profit_percent  NUMERIC,
		trading_fees    NUMERIC NOT NULL,
		negative_profit BOOLEAN NOT NULL,
		past_cutoff     BOOLEAN NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL
	)
`

const insertQuery = `
	INSERT INTO order_quotes (
		id, kind, market_id, side, num_shares, price, purchase_price,
		min_price, max_price, topology, fee_rate,
		profit, loss, profit_percent, trading_fees,
		negative_profit, past_cutoff, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
	)
`

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage and ensures the journal table exists.
func NewPostgresStorage(ctx context.Context, cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	storage := &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}

	err = storage.EnsureSchema(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return storage, nil
}

// EnsureSchema creates the order_quotes table if it does not exist.
func (p *PostgresStorage) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("create order_quotes table: %w", err)
	}
	return nil
}

// StoreQuote inserts a quote into order_quotes.
func (p *PostgresStorage) StoreQuote(ctx context.Context, q *quote.Quote) error {
	var loss, profitPercent, purchasePrice any
	if q.Opening != nil {
		loss = q.Opening.PotentialLoss.String()
		profitPercent = q.Opening.PotentialProfitPercent.String()
	}
	if q.Kind == quote.KindClose {
		purchasePrice = q.PurchasePrice.String()
	}

	_, err := p.db.ExecContext(ctx, insertQuery,
		q.ID,
		string(q.Kind),
		nullString(q.MarketID),
		string(q.Side),
		q.NumShares.String(),
		q.Price.String(),
		purchasePrice,
		q.Bounds.MinPrice.String(),
		q.Bounds.MaxPrice.String(),
		string(q.Bounds.Topology),
		q.FeeRate.String(),
		q.Profit().String(),
		loss,
		profitPercent,
		q.TradingFees().String(),
		q.NegativeProfit,
		q.PastCutoff,
		q.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}

	p.logger.Debug("quote-stored",
		zap.String("quote-id", q.ID),
		zap.String("kind", string(q.Kind)))

	return nil
}

// Ping checks the database connection.
func (p *PostgresStorage) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
