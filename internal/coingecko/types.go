package coingecko

// Market is one row of the /coins/markets response. Percentage-change fields
// are pointers because the API omits them for thinly traded coins.
type Market struct {
	ID             string   `json:"id"`
	Symbol         string   `json:"symbol"`
	Name           string   `json:"name"`
	CurrentPrice   float64  `json:"current_price"`
	MarketCap      float64  `json:"market_cap"`
	MarketCapRank  int      `json:"market_cap_rank"`
	TotalVolume    float64  `json:"total_volume"`
	ATH            float64  `json:"ath"`
	PriceChange1h  *float64 `json:"price_change_percentage_1h_in_currency"`
	PriceChange24h *float64 `json:"price_change_percentage_24h_in_currency"`
	PriceChange7d  *float64 `json:"price_change_percentage_7d_in_currency"`
	LastUpdated    string   `json:"last_updated"`
}

// TrendingCoin is one entry of the /search/trending response.
type TrendingCoin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
}

type trendingResponse struct {
	Coins []struct {
		Item TrendingCoin `json:"item"`
	} `json:"coins"`
}
