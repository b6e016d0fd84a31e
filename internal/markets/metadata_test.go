package markets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mselser95/order-economics/pkg/types"
)

const testMarketID = "0x1111111111111111111111111111111111111111"

func TestNormalizeMarketID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{name: "lowercase address", id: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", want: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{name: "without prefix", id: "1111111111111111111111111111111111111111", want: testMarketID},
		{name: "too short", id: "0x1234", wantErr: true},
		{name: "not hex", id: "will-it-rain", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeMarketID(tt.id)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMarketID) {
					t.Errorf("expected ErrInvalidMarketID, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMetadataClient_FetchMarket(t *testing.T) {
	tests := []struct {
		name         string
		responseCode int
		responseBody string
		expectErr    error
		expectAnyErr bool
		check        func(t *testing.T, m *types.Market)
	}{
		{
			name:         "scalar market with string numbers",
			responseCode: http.StatusOK,
			responseBody: `{"id":"0x1111111111111111111111111111111111111111","description":"Temperature in NYC","marketType":"scalar","minPrice":"-5","maxPrice":"10","feeRate":"0.02","endTime":"2019-09-01T00:00:00Z"}`,
			check: func(t *testing.T, m *types.Market) {
				if m.Topology != types.TopologyScalar {
					t.Errorf("expected scalar topology, got %q", m.Topology)
				}
				bounds := m.Bounds()
				if bounds.MinPrice.String() != "-5" || bounds.MaxPrice.String() != "10" {
					t.Errorf("unexpected bounds %s..%s", bounds.MinPrice, bounds.MaxPrice)
				}
				if m.FeeRate.String() != "0.02" {
					t.Errorf("expected fee 0.02, got %s", m.FeeRate)
				}
				if m.EndTime.IsZero() {
					t.Error("expected end time to be parsed")
				}
			},
		},
		{
			name:         "yes/no market with numeric json and lowercase id",
			responseCode: http.StatusOK,
			responseBody: `{"id":"0x1111111111111111111111111111111111111111","description":"Will it rain?","marketType":"yesNo","minPrice":0,"maxPrice":1,"feeRate":0.01}`,
			check: func(t *testing.T, m *types.Market) {
				if m.Topology != types.TopologyBinary {
					t.Errorf("expected binary topology, got %q", m.Topology)
				}
				if m.ID != testMarketID {
					t.Errorf("expected normalized id, got %s", m.ID)
				}
			},
		},
		{
			name:         "not found",
			responseCode: http.StatusNotFound,
			expectErr:    ErrMarketNotFound,
		},
		{
			name:         "server error",
			responseCode: http.StatusInternalServerError,
			expectAnyErr: true,
		},
		{
			name:         "missing market type",
			responseCode: http.StatusOK,
			responseBody: `{"description":"?","minPrice":"0","maxPrice":"1"}`,
			expectAnyErr: true,
		},
		{
			name:         "unknown market type",
			responseCode: http.StatusOK,
			responseBody: `{"marketType":"categorical","minPrice":"0","maxPrice":"1"}`,
			expectAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasSuffix(r.URL.Path, "/markets/"+testMarketID) {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.responseCode)
				if tt.responseBody != "" {
					w.Write([]byte(tt.responseBody))
				}
			}))
			defer server.Close()

			client := NewMetadataClient(server.URL, 5*time.Second)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			market, err := client.FetchMarket(ctx, strings.ToLower(testMarketID))

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Errorf("expected %v, got %v", tt.expectErr, err)
				}
				return
			}
			if tt.expectAnyErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, market)
		})
	}
}

func TestMetadataClient_FetchMarket_InvalidID(t *testing.T) {
	client := NewMetadataClient("http://unused", time.Second)

	_, err := client.FetchMarket(context.Background(), "not-an-address")
	if !errors.Is(err, ErrInvalidMarketID) {
		t.Errorf("expected ErrInvalidMarketID, got %v", err)
	}
}
