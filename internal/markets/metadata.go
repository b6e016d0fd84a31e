package markets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	json "github.com/goccy/go-json"
	"github.com/mselser95/order-economics/pkg/types"
)

var (
	// ErrInvalidMarketID is returned for ids that are not hex contract addresses.
	ErrInvalidMarketID = errors.New("invalid market id")
	// ErrMarketNotFound is returned when the market-data API does not know the id.
	ErrMarketNotFound = errors.New("market not found")
)

// NormalizeMarketID validates a market id (a contract address) and returns its
// checksummed form.
func NormalizeMarketID(id string) (string, error) {
	if !common.IsHexAddress(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidMarketID, id)
	}
	return common.HexToAddress(id).Hex(), nil
}

// MetadataClient fetches market descriptors from the market-data API.
type MetadataClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMetadataClient creates a new metadata client.
func NewMetadataClient(baseURL string, timeout time.Duration) *MetadataClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MetadataClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchMarket fetches the descriptor for a single market.
func (c *MetadataClient) FetchMarket(ctx context.Context, id string) (*types.Market, error) {
	marketID, err := NormalizeMarketID(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		MetadataFetchDuration.Observe(time.Since(start).Seconds())
	}()

	url := fmt.Sprintf("%s/markets/%s", c.baseURL, marketID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		MetadataFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("fetch market: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrMarketNotFound, marketID)
	}

	if resp.StatusCode != http.StatusOK {
		MetadataFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var market types.Market
	err = json.NewDecoder(resp.Body).Decode(&market)
	if err != nil {
		MetadataFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("decode market: %w", err)
	}

	if market.Topology == "" {
		MetadataFetchErrorsTotal.Inc()
		return nil, fmt.Errorf("market %s has no marketType", marketID)
	}

	// The API may omit or lower-case the id; key everything by the checksummed form.
	market.ID = marketID

	return &market, nil
}
