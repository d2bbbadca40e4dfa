package domain

import "time"

type Message struct {
	Id             MessageId
	ConversationId ConversationId
	SenderId       UserId
	Text           *string
	ReplyTo        *MessageId
	IsEdited       bool
	CreatedAt      time.Time
	Username       string  // enriched from the sender row
	Avatar         *string // enriched from the sender row
}

// to iterate thru layers: handler -> service -> storage
type MessageCreationData struct {
	ConversationId ConversationId
	SenderId       UserId
	Text           *string
	ReplyTo        *MessageId
}
