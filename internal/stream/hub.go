// Package stream fans freshly sent messages out to websocket
// subscribers, per channel. It is purely in-memory pub/sub: the hub
// never touches the store, and a subscriber that cannot keep up loses
// events rather than blocking the sender.
package stream

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lalith-99/flocknest/internal/models"
)

// subscriberBuffer is the per-subscriber channel depth. A full buffer
// drops the event for that subscriber only.
const subscriberBuffer = 64

// Subscription is one listener on one channel's message feed.
type Subscription struct {
	C <-chan models.Message

	channelID int64
	ch        chan models.Message
}

// Hub routes sent messages to live subscribers keyed by channel ID.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int64]map[*Subscription]struct{}
	logger *zap.Logger
}

// NewHub creates an empty hub. Pass nil for a no-op logger.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[int64]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe registers a listener for one channel's messages. The
// caller must Unsubscribe when done or the subscription leaks.
func (h *Hub) Subscribe(channelID int64) *Subscription {
	ch := make(chan models.Message, subscriberBuffer)
	sub := &Subscription{C: ch, channelID: channelID, ch: ch}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[channelID]; !ok {
		h.subs[channelID] = make(map[*Subscription]struct{})
	}
	h.subs[channelID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes the listener and closes its channel. Safe to
// call once per subscription.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.channelID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.channelID)
	}
	close(sub.ch)
}

// Publish delivers a message to every subscriber of its channel.
// Never blocks: slow subscribers drop the event.
func (h *Hub) Publish(msg models.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[msg.ChannelID] {
		select {
		case sub.ch <- msg:
		default:
			h.logger.Warn("dropping message for slow subscriber",
				zap.Int64("channel_id", msg.ChannelID),
				zap.Int64("message_id", msg.ID),
			)
		}
	}
}
