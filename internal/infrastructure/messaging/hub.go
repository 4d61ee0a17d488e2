package messaging

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/legible/internal/application/port"
	"github.com/bnema/legible/internal/domain/entity"
	"github.com/bnema/legible/internal/logging"
)

// ErrSubscriberBehind is the delivery error for a listener whose buffer is full.
var ErrSubscriberBehind = errors.New("subscriber is not keeping up")

const defaultHubBuffer = 8

type subscriber struct {
	name string
	ch   chan SettingsUpdated
}

// Hub fans SETTINGS_UPDATED out to subscribed UIs. Publishing never blocks:
// a listener whose buffer is full misses the event and the miss is reported.
type Hub struct {
	buffer int

	mu   sync.RWMutex
	subs map[string]*subscriber
}

var _ port.SettingsBroadcaster = (*Hub)(nil)

// NewHub creates a hub with the given per-subscriber buffer.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultHubBuffer
	}
	return &Hub{
		buffer: buffer,
		subs:   make(map[string]*subscriber),
	}
}

// Subscribe registers a listener. The returned cancel function removes it
// and closes the channel.
func (h *Hub) Subscribe(name string) (id string, events <-chan SettingsUpdated, cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id = uuid.NewString()
	sub := &subscriber{name: name, ch: make(chan SettingsUpdated, h.buffer)}
	h.subs[id] = sub

	var once sync.Once
	cancel = func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(sub.ch)
		})
	}
	return id, sub.ch, cancel
}

// Publish implements port.SettingsBroadcaster.
func (h *Hub) Publish(ctx context.Context, settings *entity.Settings) []port.Delivery {
	log := logging.FromContext(ctx)

	h.mu.RLock()
	defer h.mu.RUnlock()

	deliveries := make([]port.Delivery, 0, len(h.subs))
	for id, sub := range h.subs {
		event := SettingsUpdated{Action: ActionSettingsUpdated, NewSettings: settings.Clone()}
		target := sub.name + "#" + id[:8]
		select {
		case sub.ch <- event:
			deliveries = append(deliveries, port.Delivery{Target: target})
		default:
			log.Debug().Str("target", target).Msg("dropping settings update for slow subscriber")
			deliveries = append(deliveries, port.Delivery{Target: target, Err: ErrSubscriberBehind})
		}
	}
	return deliveries
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
