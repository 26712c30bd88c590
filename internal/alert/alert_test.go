package alert

import (
	"math"
	"testing"
	"time"

	"coingecko-telegram-bot/internal/coingecko"
	"coingecko-telegram-bot/internal/registry"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	markets []coingecko.Market
	err     error
	calls   int
}

func (f *fakeSource) Markets() ([]coingecko.Market, error) {
	f.calls++
	return f.markets, f.err
}

type notification struct {
	chatID int64
	text   string
}

type fakeNotifier struct {
	sent []notification
}

func (f *fakeNotifier) Notify(chatID int64, text string) error {
	f.sent = append(f.sent, notification{chatID: chatID, text: text})
	return nil
}

func bitcoinAt(price float64) []coingecko.Market {
	return []coingecko.Market{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: price},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum", CurrentPrice: 3100},
	}
}

func newService(reg *registry.Registry, src MarketSource, n Notifier) *Service {
	return NewService(reg, src, n, time.Minute)
}

func TestCheckAlerts_FiresAndDeletes(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "bitcoin", 50000)

	src := &fakeSource{markets: bitcoinAt(50500)}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	require.Len(t, n.sent, 1)
	require.Equal(t, int64(42), n.sent[0].chatID)
	require.Contains(t, n.sent[0].text, "Bitcoin")
	require.Empty(t, reg.List(42))
}

func TestCheckAlerts_BelowTargetKeepsAlert(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "bitcoin", 50000)

	src := &fakeSource{markets: bitcoinAt(49900)}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	require.Empty(t, n.sent)
	require.Len(t, reg.List(42), 1)
}

func TestCheckAlerts_ExactTargetCounts(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "bitcoin", 50000)

	src := &fakeSource{markets: bitcoinAt(50000)}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	require.Len(t, n.sent, 1)
	require.Empty(t, reg.List(42))
}

func TestCheckAlerts_EmptyRegistrySkipsFetch(t *testing.T) {
	src := &fakeSource{markets: bitcoinAt(50500)}
	newService(registry.New(), src, &fakeNotifier{}).CheckAlerts()

	require.Equal(t, 0, src.calls)
}

func TestCheckAlerts_MatchesBySymbol(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "btc", 50000)

	src := &fakeSource{markets: bitcoinAt(50500)}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	require.Len(t, n.sent, 1)
	require.Empty(t, reg.List(42))
}

func TestCheckAlerts_UnknownCoinLingers(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "dogecon", 0.1) // typo never matches

	src := &fakeSource{markets: bitcoinAt(50500)}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	require.Empty(t, n.sent)
	require.Len(t, reg.List(42), 1)
}

func TestCheckAlerts_NaNTargetNeverFires(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "bitcoin", math.NaN())

	src := &fakeSource{markets: bitcoinAt(50500)}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	// no price compares greater-or-equal to NaN
	require.Empty(t, n.sent)
	require.Len(t, reg.List(42), 1)
}

func TestCheckAlerts_FetchErrorKeepsAlerts(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "bitcoin", 50000)

	src := &fakeSource{err: errors.New("upstream down")}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	require.Empty(t, n.sent)
	require.Len(t, reg.List(42), 1)
	require.Equal(t, 1, src.calls)
}

func TestCheckAlerts_OnlyOwnerNotified(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "bitcoin", 50000)
	reg.Set(7, "ethereum", 999999)

	src := &fakeSource{markets: bitcoinAt(50500)}
	n := &fakeNotifier{}
	newService(reg, src, n).CheckAlerts()

	require.Len(t, n.sent, 1)
	require.Equal(t, int64(42), n.sent[0].chatID)
	require.Len(t, reg.List(7), 1)
}

func TestCheckAlerts_TriggeredHook(t *testing.T) {
	reg := registry.New()
	reg.Set(42, "bitcoin", 50000)
	reg.Set(42, "ethereum", 3000)

	svc := newService(reg, &fakeSource{markets: bitcoinAt(50500)}, &fakeNotifier{})
	var fired int
	svc.OnTriggered(func() { fired++ })
	svc.CheckAlerts()

	require.Equal(t, 2, fired)
	require.Empty(t, reg.List(42))
}
