package coingecko

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client is a read-only, unauthenticated CoinGecko API consumer. An optional
// demo API key is sent as a header when set.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type ClientOption func(*Client)

func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(options ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Markets fetches the top 20 coins by market cap in USD with 1h/24h/7d
// percentage-change fields.
func (c *Client) Markets() ([]Market, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", "20")
	q.Set("page", "1")
	q.Set("price_change_percentage", "1h,24h,7d")

	var markets []Market
	if err := c.getJSON("/coins/markets?"+q.Encode(), &markets); err != nil {
		return nil, errors.Wrap(err, "could not fetch markets")
	}

	log.Debugf("fetched %d market rows", len(markets))
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debug(spew.Sdump(markets))
	}
	return markets, nil
}

// Trending fetches the currently trending coins.
func (c *Client) Trending() ([]TrendingCoin, error) {
	var resp trendingResponse
	if err := c.getJSON("/search/trending", &resp); err != nil {
		return nil, errors.Wrap(err, "could not fetch trending coins")
	}

	coins := make([]TrendingCoin, 0, len(resp.Coins))
	for _, entry := range resp.Coins {
		coins = append(coins, entry.Item)
	}

	log.Debugf("fetched %d trending coins", len(coins))
	return coins, nil
}

func (c *Client) getJSON(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "could not build request")
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "could not decode response from %s", path)
	}
	return nil
}
