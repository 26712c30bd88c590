package alert

import (
	"fmt"
	"strings"
	"time"

	"coingecko-telegram-bot/internal/coingecko"
	"coingecko-telegram-bot/internal/registry"
	"coingecko-telegram-bot/lib/helpers"

	log "github.com/sirupsen/logrus"
)

// MarketSource yields one fresh market snapshot per call.
type MarketSource interface {
	Markets() ([]coingecko.Market, error)
}

// Notifier delivers an async text notification to a chat.
type Notifier interface {
	Notify(chatID int64, text string) error
}

// Service scans the alert registry against fresh market data on a fixed
// interval and fires one-shot notifications.
type Service struct {
	registry *registry.Registry
	source   MarketSource
	notifier Notifier
	interval time.Duration

	triggered func() // optional metrics hook, called once per fired alert
	stop      chan struct{}
}

func NewService(reg *registry.Registry, source MarketSource, notifier Notifier, interval time.Duration) *Service {
	return &Service{
		registry: reg,
		source:   source,
		notifier: notifier,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// OnTriggered registers a callback invoked each time an alert fires.
func (s *Service) OnTriggered(fn func()) {
	s.triggered = fn
}

// Start launches the recurring evaluation loop in its own goroutine.
func (s *Service) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.tick()
			case <-s.stop:
				return
			}
		}
	}()
	log.Info("🚀 Alert service started")
}

// Stop terminates the evaluation loop. An in-flight scan finishes first.
func (s *Service) Stop() {
	close(s.stop)
}

// tick runs one scan behind a recover boundary so a panic cannot kill the
// recurring loop.
func (s *Service) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("🔥 Panic recovered in alert checker: %v", r)
		}
	}()
	s.CheckAlerts()
}

// CheckAlerts compares every registered alert with live prices, notifies the
// owning chat on a hit and deletes the alert. A price at or above target
// counts; there is no re-arming.
func (s *Service) CheckAlerts() {
	if s.registry.Len() == 0 {
		log.Debug("no alerts registered, skipping market fetch")
		return
	}

	log.Debug("🔄 Checking alerts...")

	markets, err := s.source.Markets()
	if err != nil {
		log.Errorf("❌ Failed to fetch market data for alert check: %v", err)
		return
	}

	// Snapshot the key set so deletions cannot skew the scan.
	for _, key := range s.registry.Keys() {
		a, ok := s.registry.Get(key)
		if !ok {
			continue
		}

		m, found := findCoin(markets, a.Coin)
		if !found {
			log.Debugf("⚠️ No market data found for coin: %s", a.Coin)
			continue
		}

		log.Debugf("🔍 Checking alert | Chat: %d | Coin: %s | Target: %.2f | Current: %.2f",
			a.ChatID, a.Coin, a.Target, m.CurrentPrice)

		if !(m.CurrentPrice >= a.Target) {
			continue
		}

		text := fmt.Sprintf(
			"🚨 *Price Alert Triggered*\n\n*%s \\(%s\\)* has reached the target price of *$%s*\nCurrent Price: *$%s*",
			helpers.EscapeMarkdownV2(m.Name),
			helpers.EscapeMarkdownV2(strings.ToUpper(m.Symbol)),
			helpers.FormatPriceUS(a.Target, true),
			helpers.FormatPriceUS(m.CurrentPrice, true),
		)

		if err := s.notifier.Notify(a.ChatID, text); err != nil {
			log.Errorf("❌ Failed to send alert notification: %v", err)
		} else {
			log.Infof("✅ Alert notification sent to chat %d", a.ChatID)
		}

		s.registry.Remove(key)
		if s.triggered != nil {
			s.triggered()
		}
	}

	log.Debug("✅ Alert check completed")
}

// findCoin matches a lower-cased coin identifier against either the CoinGecko
// id or the ticker symbol.
func findCoin(markets []coingecko.Market, coin string) (coingecko.Market, bool) {
	for _, m := range markets {
		if m.ID == coin || strings.ToLower(m.Symbol) == coin {
			return m, true
		}
	}
	return coingecko.Market{}, false
}
