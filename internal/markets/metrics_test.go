package markets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetrics_CacheHitsAndMisses checks that a cached lookup records one miss
// for the first fetch and one hit for the repeat.
func TestMetrics_CacheHitsAndMisses(t *testing.T) {
	fetcher := &countingFetcher{market: binaryMarket()}
	c := newTestCache(t)
	client := NewCachedMetadataClient(fetcher, c, time.Hour)

	hits := testutil.ToFloat64(MetadataCacheHitsTotal)
	misses := testutil.ToFloat64(MetadataCacheMissesTotal)

	if _, err := client.GetMarket(context.Background(), testMarketID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Wait()
	if _, err := client.GetMarket(context.Background(), testMarketID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := testutil.ToFloat64(MetadataCacheMissesTotal) - misses; got != 1 {
		t.Errorf("misses delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(MetadataCacheHitsTotal) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
}

// TestMetrics_NoCacheRecordsNothing checks that a client without a cache
// leaves the hit and miss counters alone.
func TestMetrics_NoCacheRecordsNothing(t *testing.T) {
	client := NewCachedMetadataClient(&countingFetcher{market: binaryMarket()}, nil, 0)

	hits := testutil.ToFloat64(MetadataCacheHitsTotal)
	misses := testutil.ToFloat64(MetadataCacheMissesTotal)

	if _, err := client.GetMarket(context.Background(), testMarketID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if testutil.ToFloat64(MetadataCacheHitsTotal) != hits || testutil.ToFloat64(MetadataCacheMissesTotal) != misses {
		t.Error("expected cache counters to be unchanged")
	}
}

// TestMetrics_FetchErrors checks that API failures are counted and a plain
// not-found is not.
func TestMetrics_FetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   float64
	}{
		{name: "server-error", status: http.StatusInternalServerError, want: 1},
		{name: "bad-body", status: http.StatusOK, body: `{"marketType":`, want: 1},
		{name: "not-found", status: http.StatusNotFound, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			before := testutil.ToFloat64(MetadataFetchErrorsTotal)

			client := NewMetadataClient(server.URL, time.Second)
			if _, err := client.FetchMarket(context.Background(), testMarketID); err == nil {
				t.Fatal("expected error")
			}

			if got := testutil.ToFloat64(MetadataFetchErrorsTotal) - before; got != tt.want {
				t.Errorf("fetch errors delta = %v, want %v", got, tt.want)
			}
		})
	}
}
