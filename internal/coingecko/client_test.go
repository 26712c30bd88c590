package coingecko

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const marketsPayload = `[
	{
		"id": "bitcoin",
		"symbol": "btc",
		"name": "Bitcoin",
		"current_price": 50500.12,
		"market_cap": 995000000000,
		"market_cap_rank": 1,
		"total_volume": 32000000000,
		"ath": 69045,
		"price_change_percentage_1h_in_currency": 0.12,
		"price_change_percentage_24h_in_currency": -3.456,
		"price_change_percentage_7d_in_currency": 5.9
	},
	{
		"id": "ethereum",
		"symbol": "eth",
		"name": "Ethereum",
		"current_price": 3100.5,
		"market_cap": 372000000000,
		"market_cap_rank": 2,
		"total_volume": 18000000000,
		"ath": 4878.26
	}
]`

const trendingPayload = `{
	"coins": [
		{"item": {"id": "pepe", "name": "Pepe", "symbol": "PEPE", "market_cap_rank": 41}},
		{"item": {"id": "sui", "name": "Sui", "symbol": "SUI", "market_cap_rank": 18}}
	]
}`

func TestClient_Markets(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(marketsPayload))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	markets, err := c.Markets()
	require.NoError(t, err)
	require.Equal(t, "/coins/markets", gotPath)
	require.Contains(t, gotQuery, "vs_currency=usd")
	require.Contains(t, gotQuery, "per_page=20")

	require.Len(t, markets, 2)
	require.Equal(t, "bitcoin", markets[0].ID)
	require.Equal(t, 50500.12, markets[0].CurrentPrice)
	require.NotNil(t, markets[0].PriceChange24h)
	require.Equal(t, -3.456, *markets[0].PriceChange24h)

	// ethereum row has no percentage-change fields
	require.Nil(t, markets[1].PriceChange1h)
	require.Nil(t, markets[1].PriceChange24h)
}

func TestClient_MarketsAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithAPIKey("secret"))
	_, err := c.Markets()
	require.NoError(t, err)
	require.Equal(t, "secret", gotKey)
}

func TestClient_Trending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/trending", r.URL.Path)
		w.Write([]byte(trendingPayload))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	coins, err := c.Trending()
	require.NoError(t, err)
	require.Len(t, coins, 2)
	require.Equal(t, "pepe", coins[0].ID)
	require.Equal(t, 18, coins[1].MarketCapRank)
}

func TestClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	_, err := c.Markets()
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")

	_, err = c.Trending()
	require.Error(t, err)
}
