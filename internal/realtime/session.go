package realtime

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/converse-dev/converse/internal/api"
	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/logger"
	"github.com/converse-dev/converse/internal/service"
)

// commandConn is the slice of *websocket.Conn the session reads from.
type commandConn interface {
	ReadMessage() (messageType int, p []byte, err error)
}

// Session drives one authorized realtime connection. Commands are read and
// processed strictly in arrival order; fan-out of the results happens
// through the orchestrator's publisher after each persistence commit.
type Session struct {
	chat           service.ChatService
	hub            *Hub
	conn           commandConn
	handle         Handle
	userId         domain.UserId
	conversationId domain.ConversationId
	channel        string
}

// NewSession binds an already-authorized connection to (user, conversation)
// and registers it on the conversation's channel.
func NewSession(chat service.ChatService, hub *Hub, conn commandConn, handle Handle, userId domain.UserId, conversationId domain.ConversationId) *Session {
	s := &Session{
		chat:           chat,
		hub:            hub,
		conn:           conn,
		handle:         handle,
		userId:         userId,
		conversationId: conversationId,
		channel:        ConversationChannel(conversationId),
	}
	hub.Join(s.channel, userId, handle)
	return s
}

// Run reads commands until the connection drops. Cleanup is unconditional:
// every exit path deregisters this session's handle from the hub.
func (s *Session) Run() {
	defer func() {
		s.hub.Drop(s.channel, s.userId, s.handle)
		s.handle.Close(websocket.CloseNormalClosure, "")
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Log.Debug("websocket read failed", "userId", s.userId, "error", err)
			}
			return
		}
		s.dispatch(data)
	}
}

func (s *Session) dispatch(data []byte) {
	var cmd api.RealtimeCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		s.sendError("invalid command")
		return
	}

	switch cmd.Type {
	case api.EventMessageNew:
		var payload api.NewMessagePayload
		if len(cmd.Payload) > 0 {
			if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
				s.sendError("invalid payload")
				return
			}
		}
		_, err := s.chat.SendMessage(s.userId, domain.MessageCreationData{
			ConversationId: s.conversationId,
			SenderId:       s.userId,
			Text:           payload.Text,
			ReplyTo:        payload.ReplyTo,
		})
		if err != nil {
			// local failure: report to this connection only, keep the session
			s.sendError(err.Error())
		}
	default:
		// unrecognized command types are reserved for future extension
	}
}

func (s *Session) sendError(message string) {
	payload, err := json.Marshal(api.RealtimeEvent{
		Type:    api.EventError,
		Payload: api.ErrorPayload{Message: message},
	})
	if err != nil {
		return
	}
	_ = s.handle.Deliver(payload)
}
