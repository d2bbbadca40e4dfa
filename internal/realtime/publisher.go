package realtime

import (
	"encoding/json"

	"github.com/converse-dev/converse/internal/api"
	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/logger"
)

// Publisher pushes committed messages to the conversation's channel.
// Every subscriber receives the event, the sender included, so all
// connected clients converge on the server-assigned id and timestamp.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub}
}

func (p *Publisher) MessageCreated(message *domain.Message) {
	payload, err := json.Marshal(api.RealtimeEvent{
		Type:    api.EventMessageNew,
		Payload: api.NewMessageResponse(message),
	})
	if err != nil {
		logger.Log.Error("marshal message event", "error", err)
		return
	}
	p.hub.Broadcast(ConversationChannel(message.ConversationId), payload, 0)
}
