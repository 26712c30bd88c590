// Package translation wraps gotext for the bot's user-facing reply strings.
// When no locale catalog matches, Translate falls back to the English msgID
// itself, formatted with any vars.
package translation

import (
	"github.com/leonelquinteros/gotext"
)

func GetLanguage() string {
	lang := gotext.GetLanguage()

	if lang == "und" || lang == "" {
		return "en"
	}

	return lang
}

func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
