package storage

import (
	"context"

	"github.com/mselser95/order-economics/internal/quote"
)

// Storage is the interface for journaling computed quotes.
type Storage interface {
	// StoreQuote journals a computed quote.
	StoreQuote(ctx context.Context, q *quote.Quote) error

	// Close closes the storage connection.
	Close() error
}

var (
	_ quote.Storage = (*ConsoleStorage)(nil)
	_ quote.Storage = (*PostgresStorage)(nil)
)
