package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/wallet-txcore/market"
)

const (
	coingeckoAPI = "https://api.coingecko.com/api/v3"
)

// CoinGeckoClient client for CoinGecko API
type CoinGeckoClient struct {
	baseURL    string
	coinID     string
	currencies []string
	client     *http.Client
}

// NewCoinGeckoClient creates a new CoinGecko client pricing coinID in the given currencies.
// An empty baseURL selects the public API.
func NewCoinGeckoClient(baseURL, coinID string, currencies []string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = coingeckoAPI
	}
	return &CoinGeckoClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		coinID:     coinID,
		currencies: currencies,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// PriceResponse response from CoinGecko API, keyed by coin id then currency
type PriceResponse map[string]map[string]float64

func (c *CoinGeckoClient) Name() string {
	return "coingecko"
}

// FetchPrices gets the coin's rate in every configured currency
func (c *CoinGeckoClient) FetchPrices(ctx context.Context) (market.PriceTable, error) {
	q := url.Values{}
	q.Set("ids", c.coinID)
	q.Set("vs_currencies", strings.Join(c.currencies, ","))
	endpoint := fmt.Sprintf("%s/simple/price?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get rate: status %d", resp.StatusCode)
	}

	var priceResp PriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return nil, fmt.Errorf("failed to decode rate: %w", err)
	}

	rates, ok := priceResp[c.coinID]
	if !ok {
		return nil, fmt.Errorf("failed to get rate: no prices for %s", c.coinID)
	}
	return market.NewPriceTable(rates), nil
}
