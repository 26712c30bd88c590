package commands

import (
	"coingecko-telegram-bot/lib/helpers"
	"coingecko-telegram-bot/lib/translation"
)

// CommandHelp handles /help and /start.
func CommandHelp() string {
	return helpers.EscapeMarkdownV2(translation.Translate(
		"I watch the crypto market on CoinGecko.\n\n" +
			"/price <coin> - current price and stats\n" +
			"/trending - trending coins\n" +
			"/market - top gainers and losers\n" +
			"/alert <coin> <price> - one-shot price alert\n" +
			"/myalerts - your active alerts\n" +
			"/help - this message",
	))
}
