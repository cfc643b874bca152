package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-txcore/transaction"
)

func TestCoinGeckoClient_FetchPrices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "ark", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd,eur", r.URL.Query().Get("vs_currencies"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ark":{"usd":0.2345,"eur":0.21}}`))
	}))
	defer srv.Close()

	c := NewCoinGeckoClient(srv.URL+"/", "ark", []string{"usd", "eur"})
	assert.Equal(t, "coingecko", c.Name())

	prices, err := c.FetchPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eur", "usd"}, prices.Currencies())

	usd, err := prices.Price("USD")
	require.NoError(t, err)
	assert.Equal(t, "0.2345", usd.String())
}

func TestCoinGeckoClient_Errors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") == "missing" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewCoinGeckoClient(srv.URL, "ark", []string{"usd"}).FetchPrices(context.Background())
	assert.ErrorContains(t, err, "status 429")

	_, err = NewCoinGeckoClient(srv.URL, "missing", []string{"usd"}).FetchPrices(context.Background())
	assert.ErrorContains(t, err, "no prices")
}

func TestPeerClient_Build(t *testing.T) {
	t.Parallel()

	var got BuildRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transactions/build", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"data":{"id":"abc","serialized":"ff00"}}`))
	}))
	defer srv.Close()

	c := NewPeerClient(srv.URL, nil)
	key := transaction.NewKey(transaction.GroupMagistrate, transaction.TypeBusinessUpdate)
	payload := transaction.Payload{Fee: 5000000000, Asset: transaction.Asset{"name": "Acme"}}

	signable, err := c.Build(context.Background(), key, payload, true, false)
	require.NoError(t, err)

	assert.Equal(t, transaction.TypeBusinessUpdate, got.Type)
	assert.Equal(t, transaction.GroupMagistrate, got.TypeGroup)
	assert.Equal(t, "5000000000", got.Fee)
	assert.True(t, got.IsAdvancedFee)
	assert.False(t, got.ReturnObject)
	assert.Equal(t, "Acme", got.Asset["name"])

	assert.Equal(t, key, signable.Key)
	assert.JSONEq(t, `{"id":"abc","serialized":"ff00"}`, string(signable.Data))
}

func TestPeerClient_BuildRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"Unprocessable Entity","message":"name already taken"}`))
	}))
	defer srv.Close()

	_, err := NewPeerClient(srv.URL, nil).Build(context.Background(), transaction.NewKey(2, 0), transaction.Payload{}, false, false)
	require.Error(t, err)
	assert.True(t, IsPeerError(err))
	assert.ErrorContains(t, err, "name already taken")
}

func TestPeerClient_FetchPrices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/market/prices", r.URL.Path)
		assert.Equal(t, "usd,btc", r.URL.Query().Get("currencies"))
		_, _ = w.Write([]byte(`{"data":{"usd":0.5,"btc":0.00001,"gbp":0}}`))
	}))
	defer srv.Close()

	c := NewPeerClient(srv.URL, []string{"usd", "btc"})
	assert.Equal(t, "peer", c.Name())

	prices, err := c.FetchPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"btc", "usd"}, prices.Currencies(), "non-positive rates dropped")
}

func TestPriceFeed_PeerFirst(t *testing.T) {
	t.Parallel()

	var geckoHits atomic.Int32
	gecko := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		geckoHits.Add(1)
		_, _ = w.Write([]byte(`{"ark":{"usd":0.25}}`))
	}))
	defer gecko.Close()

	var peerDown atomic.Bool
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if peerDown.Load() {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"usd":0.5}}`))
	}))
	defer peer.Close()

	feed := PriceFeed(NewPeerClient(peer.URL, []string{"usd"}), NewCoinGeckoClient(gecko.URL, "ark", []string{"usd"}))
	assert.Equal(t, "peer|coingecko", feed.Name())

	prices, err := feed.FetchPrices(context.Background())
	require.NoError(t, err)
	usd, err := prices.Price("usd")
	require.NoError(t, err)
	assert.Equal(t, "0.5", usd.String())
	assert.Zero(t, geckoHits.Load(), "peer answered")

	peerDown.Store(true)
	prices, err = feed.FetchPrices(context.Background())
	require.NoError(t, err)
	usd, err = prices.Price("usd")
	require.NoError(t, err)
	assert.Equal(t, "0.25", usd.String())
	assert.Equal(t, int32(1), geckoHits.Load())
}
