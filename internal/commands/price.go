package commands

import (
	"fmt"
	"strings"

	"coingecko-telegram-bot/internal/coingecko"
	"coingecko-telegram-bot/lib/helpers"
	"coingecko-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// CommandPrice handles /price <coin>. A fetch failure is returned as an error
// for the dispatcher to turn into the generic unavailable reply; a lookup miss
// is an ordinary "not found" reply.
func CommandPrice(argument string) (string, error) {
	log.Debugf("processing command /price with argument: %s", argument)

	coin := strings.ToLower(strings.TrimSpace(argument))
	if coin == "" {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /price <coin>, e.g. /price bitcoin")), nil
	}

	markets, err := gecko.Markets()
	if err != nil {
		return "", errors.Wrap(err, "command /price")
	}

	m, found := findMarket(markets, coin)
	if !found {
		return helpers.EscapeMarkdownV2(translation.Translate("Coin %s not found in the top 20 by market cap", coin)), nil
	}

	return fmt.Sprintf(
		"*%s \\(%s\\)*\n\n"+
			"Price: *$%s*\n"+
			"1h: %s\n"+
			"24h: %s\n"+
			"7d: %s\n\n"+
			"MCap: *$%s*\n"+
			"Vol 24h: *$%s*\n"+
			"ATH: *$%s*",
		helpers.EscapeMarkdownV2(m.Name),
		helpers.EscapeMarkdownV2(strings.ToUpper(m.Symbol)),
		helpers.FormatPriceUS(m.CurrentPrice, true),
		helpers.EscapeMarkdownV2(helpers.FormatPercentChange(m.PriceChange1h)),
		helpers.EscapeMarkdownV2(helpers.FormatPercentChange(m.PriceChange24h)),
		helpers.EscapeMarkdownV2(helpers.FormatPercentChange(m.PriceChange7d)),
		helpers.EscapeMarkdownV2(helpers.FormatAmountUS(m.MarketCap)),
		helpers.EscapeMarkdownV2(helpers.FormatAmountUS(m.TotalVolume)),
		helpers.FormatPriceUS(m.ATH, true),
	), nil
}

// findMarket matches a lower-cased query against either the CoinGecko id or
// the ticker symbol.
func findMarket(markets []coingecko.Market, coin string) (coingecko.Market, bool) {
	for _, m := range markets {
		if m.ID == coin || strings.ToLower(m.Symbol) == coin {
			return m, true
		}
	}
	return coingecko.Market{}, false
}
