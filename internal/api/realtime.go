package api

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Realtime wire contract, one channel per conversation.

const (
	EventMessageNew = "message:new"
	EventError      = "error"
)

// RealtimeCommand is an inbound frame from a connected client.
type RealtimeCommand struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessagePayload is the payload of an inbound "message:new" command.
type NewMessagePayload struct {
	Text    *string    `json:"text"`
	ReplyTo *uuid.UUID `json:"reply_to"`
}

// RealtimeEvent is an outbound frame pushed to subscribers.
type RealtimeEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// ErrorPayload is pushed back to the originating connection only.
type ErrorPayload struct {
	Message string `json:"message"`
}
