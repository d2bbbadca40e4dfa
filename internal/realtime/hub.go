package realtime

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/logger"
)

var (
	subscribersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ws_subscribers",
		Help: "Number of live websocket subscribers across all channels",
	})
	channelsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ws_channels_active",
		Help: "Number of channels with at least one live subscriber",
	})
)

// Handle is a live connection the hub can push payloads to.
// Deliver must not block; a failed delivery means the connection is beyond
// saving and the hub drops it.
type Handle interface {
	Deliver(payload []byte) error
	Close(code int, reason string)
}

// ConversationChannel derives the fan-out channel name for a conversation.
func ConversationChannel(id domain.ConversationId) string {
	return "conversation:" + id.String()
}

// Hub is the process-local delivery registry: channel -> userId -> handle.
// Purely advisory and ephemeral; membership authorization always goes
// through storage, never through presence here.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[domain.UserId]Handle
}

func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[domain.UserId]Handle)}
}

// Join registers a handle for (channel, userId). A prior handle for the
// same pair is silently replaced and closed: last connect wins.
func (h *Hub) Join(channel string, userId domain.UserId, handle Handle) {
	h.mu.Lock()
	users := h.channels[channel]
	if users == nil {
		users = make(map[domain.UserId]Handle)
		h.channels[channel] = users
		channelsGauge.Inc()
	}
	previous := users[userId]
	users[userId] = handle
	if previous == nil {
		subscribersGauge.Inc()
	}
	h.mu.Unlock()

	if previous != nil {
		previous.Close(websocket.CloseNormalClosure, "session replaced")
	}
	logger.Log.Debug("subscriber joined", "channel", channel, "userId", userId)
}

// Leave removes the mapping for (channel, userId). When the channel has no
// subscribers left its entry is removed as well.
func (h *Hub) Leave(channel string, userId domain.UserId) {
	h.mu.Lock()
	h.leaveLocked(channel, userId, nil)
	h.mu.Unlock()
}

// Drop removes the mapping only when the registered handle is still the
// given one. Used on session exit so that a stale session replaced by a
// newer connection does not evict its successor.
func (h *Hub) Drop(channel string, userId domain.UserId, handle Handle) {
	h.mu.Lock()
	h.leaveLocked(channel, userId, handle)
	h.mu.Unlock()
}

func (h *Hub) leaveLocked(channel string, userId domain.UserId, onlyIf Handle) {
	users, ok := h.channels[channel]
	if !ok {
		return
	}
	current, ok := users[userId]
	if !ok {
		return
	}
	if onlyIf != nil && current != onlyIf {
		return
	}
	delete(users, userId)
	subscribersGauge.Dec()
	if len(users) == 0 {
		delete(h.channels, channel)
		channelsGauge.Dec()
	}
}

// SendToUser delivers payload to a single subscriber, best effort.
func (h *Hub) SendToUser(channel string, userId domain.UserId, payload []byte) {
	h.mu.RLock()
	handle := h.channels[channel][userId]
	h.mu.RUnlock()

	if handle == nil {
		return
	}
	if err := handle.Deliver(payload); err != nil {
		h.dropBroken(channel, userId, handle)
	}
}

// Broadcast delivers payload to every subscriber of the channel except
// excludeUserId (0 excludes nobody). Iteration runs over a snapshot; a
// failed delivery drops only that subscriber and never aborts fan-out to
// the rest.
func (h *Hub) Broadcast(channel string, payload []byte, excludeUserId domain.UserId) {
	type target struct {
		userId domain.UserId
		handle Handle
	}

	h.mu.RLock()
	users := h.channels[channel]
	targets := make([]target, 0, len(users))
	for userId, handle := range users {
		if excludeUserId != 0 && userId == excludeUserId {
			continue
		}
		targets = append(targets, target{userId, handle})
	}
	h.mu.RUnlock()

	for _, t := range targets {
		if err := t.handle.Deliver(payload); err != nil {
			h.dropBroken(channel, t.userId, t.handle)
		}
	}
}

// Subscribers reports the current subscriber count of a channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

func (h *Hub) dropBroken(channel string, userId domain.UserId, handle Handle) {
	h.Drop(channel, userId, handle)
	handle.Close(websocket.CloseGoingAway, "delivery failed")
	logger.Log.Debug("dropped broken subscriber", "channel", channel, "userId", userId)
}
