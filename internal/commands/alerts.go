package commands

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"coingecko-telegram-bot/internal/registry"
	"coingecko-telegram-bot/lib/helpers"
	"coingecko-telegram-bot/lib/translation"

	log "github.com/sirupsen/logrus"
)

// CommandAlert handles /alert <coin> <price>: registers a one-shot alert that
// fires once the coin's price reaches the target.
func CommandAlert(reg *registry.Registry, chatID int64, argument string) string {
	log.Debugf("processing command /alert with argument: %s", argument)

	fields := strings.Fields(argument)
	if len(fields) != 2 {
		return helpers.EscapeMarkdownV2(translation.Translate("Usage: /alert <coin> <price>, e.g. /alert bitcoin 50000"))
	}

	coin := strings.ToLower(fields[0])
	target, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(target) || math.IsInf(target, 0) || target < 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("%s is not a valid price, use a non-negative number", fields[1]))
	}

	reg.Set(chatID, coin, target)
	log.Infof("Alert set: chat %d, coin %s, target %.2f", chatID, coin, target)

	reply := fmt.Sprintf(
		"✅ Alert set for *%s* at *$%s*",
		helpers.EscapeMarkdownV2(coin),
		helpers.FormatPriceUS(target, true),
	)

	// Best effort: show the current price when the coin is in the snapshot. A
	// fetch failure here must not undo the registration.
	if markets, err := gecko.Markets(); err == nil {
		if m, found := findMarket(markets, coin); found {
			reply += fmt.Sprintf("\nCurrent Price: *$%s*", helpers.FormatPriceUS(m.CurrentPrice, true))
		}
	} else {
		log.Debugf("could not fetch current price for alert confirmation: %v", err)
	}

	return reply
}

// CommandMyAlerts handles /myalerts: the invoking chat's active alerts.
func CommandMyAlerts(reg *registry.Registry, chatID int64) string {
	log.Debugf("processing command /myalerts for chat %d", chatID)

	alerts := reg.List(chatID)
	if len(alerts) == 0 {
		return helpers.EscapeMarkdownV2(translation.Translate("You have no active alerts"))
	}

	var b strings.Builder
	b.WriteString("⏰ *Your active alerts*\n\n")
	for _, a := range alerts {
		b.WriteString(fmt.Sprintf(
			"▫️ *%s* at *$%s*\n",
			helpers.EscapeMarkdownV2(a.Coin),
			helpers.FormatPriceUS(a.Target, true),
		))
	}
	return b.String()
}
