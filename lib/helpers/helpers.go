package helpers

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is rendered in place of numeric fields the API did not return.
const NotAvailable = "N/A"

func EscapeMarkdownV2(text string) string {
	charactersToEscape := []string{".", "-", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "=", "|", "{", "}", "!"}

	for _, char := range charactersToEscape {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}
	return text
}

func FormatPriceUS(price float64, escapeMarkdown bool) string {
	decimals := 6

	if price >= 1000 {
		decimals = 0
	} else if price > 1.2 {
		decimals = 2
	} else if price < 0.00001 {
		decimals = 8
	}

	thousandSeparator := ","

	p := message.NewPrinter(language.English)
	withCommaThousandSep := p.Sprintf("%.*f", decimals, price)
	formatted := strings.ReplaceAll(withCommaThousandSep, ",", thousandSeparator)

	if escapeMarkdown {
		return EscapeMarkdownV2(formatted)
	}
	return formatted
}

// FormatPercentChange renders a percentage change with a directional marker
// and two decimal places. A nil input renders as the NotAvailable marker.
func FormatPercentChange(change *float64) string {
	if change == nil {
		return NotAvailable
	}

	marker := "📈"
	if *change < 0 {
		marker = "📉"
	}
	return fmt.Sprintf("%s %.2f%%", marker, *change)
}

// FormatAmountUS renders a large dollar amount (market cap, volume) rounded
// to whole dollars with thousands separators.
func FormatAmountUS(amount float64) string {
	return humanize.Comma(int64(math.Round(amount)))
}
