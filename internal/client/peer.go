package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AlexZinkM/wallet-txcore/market"
	"github.com/AlexZinkM/wallet-txcore/transaction"
)

// PeerClient talks to a network peer's wallet API. It is both the build
// capability of the standard kinds and a price feed.
type PeerClient struct {
	baseURL    string
	currencies []string
	client     *http.Client
}

// NewPeerClient creates a client for the peer at baseURL
func NewPeerClient(baseURL string, currencies []string) *PeerClient {
	return &PeerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		currencies: currencies,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BuildRequest is the body of POST /api/transactions/build
type BuildRequest struct {
	Type          transaction.Type  `json:"type"`
	TypeGroup     transaction.Group `json:"typeGroup"`
	Fee           string            `json:"fee"`
	Asset         transaction.Asset `json:"asset"`
	IsAdvancedFee bool              `json:"isAdvancedFee"`
	ReturnObject  bool              `json:"returnObject"`
}

type peerResponse struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// PeerError is a rejection reported by the peer
type PeerError struct {
	Status  int
	Message string
}

func (e *PeerError) Error() string {
	return fmt.Sprintf("peer rejected request: status %d: %s", e.Status, e.Message)
}

// IsPeerError checks if error is a PeerError
func IsPeerError(err error) bool {
	var pe *PeerError
	return errors.As(err, &pe)
}

// Build asks the peer to build the transaction. Fees travel as strings so
// large arktoshi values survive JSON number handling.
func (c *PeerClient) Build(ctx context.Context, key transaction.Key, payload transaction.Payload, isAdvancedFee, returnObject bool) (*transaction.Signable, error) {
	body, err := json.Marshal(BuildRequest{
		Type:          key.Type,
		TypeGroup:     key.Group,
		Fee:           fmt.Sprintf("%d", payload.Fee),
		Asset:         payload.Asset,
		IsAdvancedFee: isAdvancedFee,
		ReturnObject:  returnObject,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal build request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/transactions/build", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	return &transaction.Signable{
		Key:   key,
		Fee:   payload.Fee,
		Asset: payload.Asset,
		Data:  data,
	}, nil
}

func (c *PeerClient) Name() string {
	return "peer"
}

// FetchPrices gets the network coin's rates from the peer's market endpoint
func (c *PeerClient) FetchPrices(ctx context.Context) (market.PriceTable, error) {
	q := url.Values{}
	q.Set("currencies", strings.Join(c.currencies, ","))

	data, err := c.do(ctx, http.MethodGet, "/api/market/prices?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rates map[string]float64
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to decode prices: %w", err)
	}
	return market.NewPriceTable(rates), nil
}

func (c *PeerClient) do(ctx context.Context, method, path string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach peer: %w", err)
	}
	defer resp.Body.Close()

	var decoded peerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &PeerError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to decode peer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || decoded.Error != "" {
		msg := decoded.Message
		if msg == "" {
			msg = decoded.Error
		}
		return nil, &PeerError{Status: resp.StatusCode, Message: msg}
	}
	if len(decoded.Data) == 0 || string(decoded.Data) == "null" {
		return nil, errors.New("peer returned no data")
	}
	return decoded.Data, nil
}
