package marketdata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptodash/src/clients/marketdata"
	"cryptodash/src/config"
	"cryptodash/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *marketdata.MarketDataClient {
	cfg := &config.Config{}
	cfg.ExternalClients.MarketData.BaseURL = baseURL
	cfg.ExternalClients.MarketData.APIKey = "test-key"
	return marketdata.NewClient(cfg)
}

func TestGetRanking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/crypto/prices", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 200,
			"results": [
				{"symbol": "BTC", "name": "Bitcoin", "price": "465000.50", "price_currency": "CNY", "market_cap": "9100000000000", "change_24h": "2.15", "volume_24h": "310000000000"},
				{"symbol": "ETH", "name": "Ethereum", "price": "24500", "price_currency": "CNY", "market_cap": "2900000000000", "change_24h": "-1.02", "volume_24h": "120000000000"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	quotes, err := client.GetRanking(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "BTC", quotes[0].Symbol)
	assert.True(t, quotes[0].Price.Equal(decimal.RequireFromString("465000.50")))
	assert.Equal(t, "CNY", quotes[0].PriceCurrency)
	assert.True(t, quotes[1].Change24h.IsNegative())
}

func TestGetRankingProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetRanking(context.Background(), 10)

	require.Error(t, err)
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)
}

func TestGetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/crypto/prices/BTC", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"symbol": "BTC", "name": "Bitcoin", "price": "465000.50", "price_currency": "CNY"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	quote, err := client.GetQuote(context.Background(), "BTC")

	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", quote.Name)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("465000.50")))
}

func TestGetQuoteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetQuote(context.Background(), "BTC")
	assert.Error(t, err)
}
