package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/mselser95/order-economics/pkg/types"
)

// MockMarketDataAPI is a mock HTTP server that serves GET /markets/{id}.
type MockMarketDataAPI struct {
	*httptest.Server
	markets map[string]*types.Market
	hits    int
	mu      sync.RWMutex
}

// NewMockMarketDataAPI creates a new mock market-data server.
func NewMockMarketDataAPI(markets ...*types.Market) *MockMarketDataAPI {
	mock := &MockMarketDataAPI{
		markets: make(map[string]*types.Market, len(markets)),
	}
	for _, m := range markets {
		mock.markets[strings.ToLower(m.ID)] = m
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		defer mock.mu.Unlock()
		mock.hits++

		id, ok := strings.CutPrefix(r.URL.Path, "/markets/")
		if !ok {
			http.NotFound(w, r)
			return
		}

		market, found := mock.markets[strings.ToLower(id)]
		if !found {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(market)
	})

	mock.Server = httptest.NewServer(handler)
	return mock
}

// AddMarket adds a market to the mock API.
func (m *MockMarketDataAPI) AddMarket(market *types.Market) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markets[strings.ToLower(market.ID)] = market
}

// Hits returns the number of requests served.
func (m *MockMarketDataAPI) Hits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits
}

// MockMarketSource is an in-memory market lookup.
type MockMarketSource struct {
	Markets map[string]*types.Market
	Err     error
	mu      sync.Mutex
	calls   int
}

// NewMockMarketSource creates a market lookup over the given markets.
func NewMockMarketSource(markets ...*types.Market) *MockMarketSource {
	src := &MockMarketSource{Markets: make(map[string]*types.Market, len(markets))}
	for _, m := range markets {
		src.Markets[m.ID] = m
	}
	return src
}

// GetMarket returns the market with the given id.
func (s *MockMarketSource) GetMarket(ctx context.Context, id string) (*types.Market, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.Err != nil {
		return nil, s.Err
	}
	market, ok := s.Markets[id]
	if !ok {
		return nil, fmt.Errorf("mock market %s not found", id)
	}
	return market, nil
}

// Calls returns the number of lookups performed.
func (s *MockMarketSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
