package domain

import "time"

type Participant struct {
	Id             int64
	ConversationId ConversationId
	UserId         UserId
	Role           ParticipantRole
	JoinedAt       time.Time
	Username       string  // enriched from the users table
	Avatar         *string // enriched from the users table
}
