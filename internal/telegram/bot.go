package telegram

import (
	"coingecko-telegram-bot/internal/commands"
	"coingecko-telegram-bot/internal/registry"
	"coingecko-telegram-bot/lib/helpers"
	"coingecko-telegram-bot/lib/translation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// NewBot creates new telegram bot
func NewBot(c BotConfig, reg *registry.Registry) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return nil, errors.Wrap(err, "could not create telegram bot")
	}

	bot.Debug = c.Debug

	return &Bot{
		Bot:      bot,
		Config:   c,
		Registry: reg,
	}, nil
}

// GetUpdatesChannel gets new updates
func (b *Bot) GetUpdatesChannel() tgbotapi.UpdatesChannel {
	updatesConfig := tgbotapi.NewUpdate(0)
	if b.Config.UpdatesTimeout > 0 {
		updatesConfig.Timeout = b.Config.UpdatesTimeout
	}
	return b.Bot.GetUpdatesChan(updatesConfig)
}

// StopReceivingUpdates stops the long-poll loop so no new platform events are
// accepted during shutdown.
func (b *Bot) StopReceivingUpdates() {
	b.Bot.StopReceivingUpdates()
}

// SendMessage sends a telegram message
func (b *Bot) SendMessage(m Message) error {
	msg := tgbotapi.NewMessage(m.ChatID, m.Text)
	msg.ReplyToMessageID = m.MessageID
	msg.DisableWebPagePreview = true
	msg.ParseMode = "MarkdownV2"
	_, err := b.Bot.Send(msg)
	return errors.Wrapf(err, "could not send message: %v", m)
}

// Notify sends an async notification to a chat without replying to any
// particular message.
func (b *Bot) Notify(chatID int64, text string) error {
	return b.SendMessage(Message{ChatID: chatID, Text: text})
}

// HandleUpdate routes a command to its handler and returns the reply text.
// Unrecognized commands get an empty reply, which the caller drops.
func (b *Bot) HandleUpdate(u tgbotapi.Update) string {
	log.Debugf("received command: %s", u.Message.Command())

	var text string
	var err error

	switch u.Message.Command() {
	case "start", "help":
		text = commands.CommandHelp()
	case "price":
		text, err = commands.CommandPrice(u.Message.CommandArguments())
	case "trending":
		text, err = commands.CommandTrending()
	case "market":
		text, err = commands.CommandMarket()
	case "alert":
		text = commands.CommandAlert(b.Registry, u.Message.Chat.ID, u.Message.CommandArguments())
	case "myalerts":
		text = commands.CommandMyAlerts(b.Registry, u.Message.Chat.ID)
	default:
		return ""
	}

	if err != nil {
		log.Error(err)
		return helpers.EscapeMarkdownV2(translation.Translate("Market data is currently unavailable, please try again later."))
	}

	return text
}
