package commands

import (
	"fmt"
	"sort"
	"strings"

	"coingecko-telegram-bot/internal/coingecko"
	"coingecko-telegram-bot/lib/helpers"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const moversSliceSize = 3

// CommandMarket handles /market: the biggest 24h gainers and losers among the
// top 20 coins by market cap.
func CommandMarket() (string, error) {
	log.Debug("processing command /market")

	markets, err := gecko.Markets()
	if err != nil {
		return "", errors.Wrap(err, "command /market")
	}

	// Coins without a 24h change cannot be ranked.
	ranked := make([]coingecko.Market, 0, len(markets))
	for _, m := range markets {
		if m.PriceChange24h != nil {
			ranked = append(ranked, m)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return *ranked[i].PriceChange24h > *ranked[j].PriceChange24h
	})

	var b strings.Builder
	b.WriteString("📊 *Market Overview \\(24h\\)*\n\n*Top Gainers*\n")
	writeMovers(&b, topMovers(ranked, false))
	b.WriteString("\n*Top Losers*\n")
	writeMovers(&b, topMovers(ranked, true))

	return b.String(), nil
}

func topMovers(ranked []coingecko.Market, losers bool) []coingecko.Market {
	n := moversSliceSize
	if n > len(ranked) {
		n = len(ranked)
	}
	if !losers {
		return ranked[:n]
	}

	tail := ranked[len(ranked)-n:]
	reversed := make([]coingecko.Market, 0, n)
	for i := len(tail) - 1; i >= 0; i-- {
		reversed = append(reversed, tail[i])
	}
	return reversed
}

func writeMovers(b *strings.Builder, movers []coingecko.Market) {
	for _, m := range movers {
		b.WriteString(fmt.Sprintf(
			"▫️ *%s*: $%s %s\n",
			helpers.EscapeMarkdownV2(strings.ToUpper(m.Symbol)),
			helpers.FormatPriceUS(m.CurrentPrice, true),
			helpers.EscapeMarkdownV2(helpers.FormatPercentChange(m.PriceChange24h)),
		))
	}
}
