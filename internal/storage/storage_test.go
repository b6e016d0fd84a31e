package storage

import (
	"bytes"
	"context"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mselser95/order-economics/internal/quote"
	"github.com/mselser95/order-economics/pkg/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openingQuote() *quote.Quote {
	return &quote.Quote{
		ID:        "5f0c6a3e-1b2d-4c8e-9f00-0123456789ab",
		Kind:      quote.KindOpening,
		MarketID:  "0x1111111111111111111111111111111111111111",
		Side:      types.SideSell,
		NumShares: dec("10"),
		Price:     dec("0.4"),
		Bounds:    types.BinaryBounds(),
		FeeRate:   dec("0.04"),
		Opening: &types.EconomicsResult{
			PotentialProfit:        dec("3.6"),
			PotentialLoss:          dec("5.6"),
			PotentialProfitPercent: dec("60"),
			PotentialLossPercent:   dec("100"),
			TradingFees:            dec("0.4"),
		},
		CreatedAt: time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func closeQuote() *quote.Quote {
	return &quote.Quote{
		ID:            "7a1d2c3b-0000-4000-8000-fedcba987654",
		Kind:          quote.KindClose,
		Side:          types.SideBuy,
		NumShares:     dec("10"),
		Price:         dec("0.25"),
		PurchasePrice: dec("0.75"),
		Bounds:        types.BinaryBounds(),
		FeeRate:       dec("0.2"),
		Close: &types.CloseResult{
			RealizedProfit: dec("-7"),
			TradingFees:    dec("2"),
		},
		NegativeProfit: true,
		PastCutoff:     true,
		CreatedAt:      time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestConsoleStorage_New(t *testing.T) {
	storage := NewConsoleStorage(zap.NewNop())

	if storage == nil {
		t.Fatal("expected non-nil storage")
	}
	if storage.logger == nil {
		t.Error("expected non-nil logger")
	}
}

func TestConsoleStorage_StoreQuote(t *testing.T) {
	tests := []struct {
		name     string
		quote    *quote.Quote
		contains []string
		excludes []string
	}{
		{
			name:  "opening",
			quote: openingQuote(),
			contains: []string{
				"ORDER QUOTE",
				"5f0c6a3e",
				"0x1111111111111111111111111111111111111111",
				"Limit Price:    0.4",
				"Potential Profit: 3.6 (60.00%)",
				"Potential Loss:   5.6 (100%)",
				"Trading Fees:     0.4 (400000000000000000 wei)",
				"PROFITABLE after fees",
			},
			excludes: []string{"Market:   \n", "cutoff"},
		},
		{
			name:  "close",
			quote: closeQuote(),
			contains: []string{
				"POSITION CLOSE QUOTE",
				"Purchase Price: 0.75",
				"Current Price:  0.25",
				"Realized Profit:  -7",
				"NO PROFIT after fees",
				"configured cutoff",
			},
			excludes: []string{"Market:", "Potential"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			storage := NewConsoleStorageWriter(&buf, zap.NewNop())

			err := storage.StoreQuote(context.Background(), tt.quote)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("expected output to contain %q\n%s", want, output)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("expected output not to contain %q\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestConsoleStorage_Close(t *testing.T) {
	storage := NewConsoleStorage(zap.NewNop())

	err := storage.Close()
	if err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}
}

func TestPostgresStorage_StoreQuote(t *testing.T) {
	tests := []struct {
		name  string
		quote *quote.Quote
		args  []driver.Value
	}{
		{
			name:  "opening",
			quote: openingQuote(),
			args: []driver.Value{
				"5f0c6a3e-1b2d-4c8e-9f00-0123456789ab",
				"opening",
				"0x1111111111111111111111111111111111111111",
				"sell",
				"10",
				"0.4",
				nil, // purchase_price
				"0",
				"1",
				"binary",
				"0.04",
				"3.6",
				"5.6",
				"60",
				"0.4",
				false,
				false,
				sqlmock.AnyArg(),
			},
		},
		{
			name:  "close",
			quote: closeQuote(),
			args: []driver.Value{
				"7a1d2c3b-0000-4000-8000-fedcba987654",
				"close",
				nil, // market_id
				"buy",
				"10",
				"0.25",
				"0.75",
				"0",
				"1",
				"binary",
				"0.2",
				"-7",
				nil, // loss
				nil, // profit_percent
				"2",
				true,
				true,
				sqlmock.AnyArg(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create sqlmock: %v", err)
			}
			defer db.Close()

			storage := &PostgresStorage{db: db, logger: zap.NewNop()}

			mock.ExpectExec("INSERT INTO order_quotes").
				WithArgs(tt.args...).
				WillReturnResult(sqlmock.NewResult(1, 1))

			err = storage.StoreQuote(context.Background(), tt.quote)
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}

func TestPostgresStorage_StoreQuote_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{db: db, logger: zap.NewNop()}

	mock.ExpectExec("INSERT INTO order_quotes").
		WillReturnError(sqlmock.ErrCancelled)

	err = storage.StoreQuote(context.Background(), openingQuote())
	if err == nil {
		t.Error("expected error, got nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStorage_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{db: db, logger: zap.NewNop()}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS order_quotes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = storage.EnsureSchema(context.Background())
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStorage_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	storage := &PostgresStorage{db: db, logger: zap.NewNop()}

	mock.ExpectPing()

	err = storage.Ping(context.Background())
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStorage_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	storage := &PostgresStorage{db: db, logger: zap.NewNop()}

	mock.ExpectClose()

	err = storage.Close()
	if err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestNewPostgresStorage_ConnectionSuccess(t *testing.T) {
	t.Skip("Requires actual PostgreSQL database")

	storage, err := NewPostgresStorage(context.Background(), &PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "economics",
		Password: "economics123",
		Database: "order_economics",
		SSLMode:  "disable",
		Logger:   zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer storage.Close()

	if storage.db == nil {
		t.Error("expected non-nil database connection")
	}
}
