package domain

import "time"

type Conversation struct {
	Id        ConversationId
	Type      ConversationType
	Title     *string
	CreatedAt time.Time
}

// to iterate thru layers: handler -> service -> storage
type ConversationCreationData struct {
	Type           ConversationType
	Title          *string
	ParticipantIds []UserId
}

// LastMessage is the newest message of a conversation, shown in list previews.
type LastMessage struct {
	Id        MessageId `json:"id"`
	SenderId  UserId    `json:"sender_id"`
	Text      *string   `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ConversationPreview is a conversation annotated for listing: for private
// conversations Title carries the other participant's username instead of
// the stored title.
type ConversationPreview struct {
	Id          ConversationId
	Type        ConversationType
	Title       string
	CreatedAt   time.Time
	LastMessage *LastMessage
}
