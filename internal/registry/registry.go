package registry

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Key identifies at most one active alert per (chat, coin) pair.
type Key struct {
	ChatID int64
	Coin   string
}

// Alert is a one-shot price-threshold alert owned by a chat. The coin field
// holds a lower-cased CoinGecko id or ticker symbol; a mistyped coin never
// matches and the alert lingers until the process restarts.
type Alert struct {
	ChatID    int64
	Coin      string
	Target    float64
	CreatedAt time.Time

	seq uint64
}

// Registry is the in-memory alert store. It is volatile by design: alerts do
// not survive a restart.
type Registry struct {
	mu      sync.RWMutex
	alerts  map[Key]Alert
	nextSeq uint64
}

func New() *Registry {
	return &Registry{alerts: make(map[Key]Alert)}
}

// Set inserts or replaces the alert for (chatID, coin). Setting a second
// target for the same coin overwrites the first.
func (r *Registry) Set(chatID int64, coin string, target float64) Alert {
	coin = strings.ToLower(strings.TrimSpace(coin))

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextSeq++
	a := Alert{
		ChatID:    chatID,
		Coin:      coin,
		Target:    target,
		CreatedAt: time.Now(),
		seq:       r.nextSeq,
	}
	r.alerts[Key{ChatID: chatID, Coin: coin}] = a
	return a
}

// Get returns the alert stored under key, if any.
func (r *Registry) Get(k Key) (Alert, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.alerts[k]
	return a, ok
}

// List returns the alerts owned by chatID in insertion order.
func (r *Registry) List(chatID int64) []Alert {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var alerts []Alert
	for _, a := range r.alerts {
		if a.ChatID == chatID {
			alerts = append(alerts, a)
		}
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].seq < alerts[j].seq })
	return alerts
}

// Keys returns a snapshot of all keys so a scan can delete entries without
// mutating the map it is iterating.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]Key, 0, len(r.alerts))
	for k := range r.alerts {
		keys = append(keys, k)
	}
	return keys
}

// Remove deletes the alert stored under key. Removing an absent key is a
// no-op.
func (r *Registry) Remove(k Key) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.alerts, k)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.alerts)
}
