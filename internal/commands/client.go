package commands

import (
	"coingecko-telegram-bot/config"
	"coingecko-telegram-bot/internal/coingecko"
)

// MarketAPI is the slice of the CoinGecko client the command handlers use.
type MarketAPI interface {
	Markets() ([]coingecko.Market, error)
	Trending() ([]coingecko.TrendingCoin, error)
}

var gecko MarketAPI

func init() {
	gecko = getClient()
}

func getClient() *coingecko.Client {
	apiKey := config.GetString("coingecko_api_key")
	if apiKey != "" {
		return coingecko.NewClient(coingecko.WithAPIKey(apiKey))
	}
	return coingecko.NewClient()
}
