package domain

import "github.com/google/uuid"

type (
	UserId         = int64
	ConversationId = uuid.UUID
	MessageId      = uuid.UUID
	AttachmentId   = int64
)

type ConversationType string

const (
	ConversationPrivate ConversationType = "private"
	ConversationGroup   ConversationType = "group"
)

func (t ConversationType) Valid() bool {
	return t == ConversationPrivate || t == ConversationGroup
}

type ParticipantRole string

const (
	RoleAdmin  ParticipantRole = "admin"
	RoleMember ParticipantRole = "member"
)

func (r ParticipantRole) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentVideo AttachmentType = "video"
	AttachmentFile  AttachmentType = "file"
)

func (t AttachmentType) Valid() bool {
	return t == AttachmentImage || t == AttachmentVideo || t == AttachmentFile
}
