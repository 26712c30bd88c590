package commands

import (
	"fmt"
	"strings"

	"coingecko-telegram-bot/lib/helpers"
	"coingecko-telegram-bot/lib/translation"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const trendingSliceSize = 7

// CommandTrending handles /trending: the top trending coins on CoinGecko.
func CommandTrending() (string, error) {
	log.Debug("processing command /trending")

	coins, err := gecko.Trending()
	if err != nil {
		return "", errors.Wrap(err, "command /trending")
	}

	if len(coins) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("Nothing is trending right now")), nil
	}
	if len(coins) > trendingSliceSize {
		coins = coins[:trendingSliceSize]
	}

	var b strings.Builder
	b.WriteString("🔥 *Trending on CoinGecko*\n\n")
	for i, c := range coins {
		rank := helpers.NotAvailable
		if c.MarketCapRank > 0 {
			rank = fmt.Sprintf("\\#%d", c.MarketCapRank)
		}
		b.WriteString(fmt.Sprintf(
			"%d\\. *%s \\(%s\\)* %s\n",
			i+1,
			helpers.EscapeMarkdownV2(c.Name),
			helpers.EscapeMarkdownV2(strings.ToUpper(c.Symbol)),
			rank,
		))
	}

	return b.String(), nil
}
