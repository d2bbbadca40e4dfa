package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/converse-dev/converse/internal/domain"
)

// Request DTOs

type RegisterRequest struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Avatar   *string `json:"avatar,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"` // username or email
	Password string `json:"password" validate:"required"`
}

type CreateConversationRequest struct {
	Type           domain.ConversationType `json:"type" validate:"required,oneof=private group"`
	Title          *string                 `json:"title,omitempty"`
	ParticipantIds []int64                 `json:"participant_ids"`
}

type RenameConversationRequest struct {
	Title *string `json:"title"`
}

type AddParticipantRequest struct {
	UserId int64                   `json:"user_id" validate:"required"`
	Role   *domain.ParticipantRole `json:"role,omitempty" validate:"omitempty,oneof=admin member"`
}

type CreateMessageRequest struct {
	ConversationId uuid.UUID  `json:"conversation_id" validate:"required"`
	Text           *string    `json:"text,omitempty"`
	ReplyTo        *uuid.UUID `json:"reply_to,omitempty"`
}

type UpdateMessageRequest struct {
	Text *string `json:"text"`
}

type CreateAttachmentRequest struct {
	MessageId uuid.UUID             `json:"message_id" validate:"required"`
	FileUrl   string                `json:"file_url" validate:"required"`
	FileType  domain.AttachmentType `json:"file_type" validate:"required,oneof=image video file"`
	FileSize  int64                 `json:"file_size" validate:"gte=0"`
}

// Response DTOs

type UserResponse struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ConversationResponse struct {
	Id        uuid.UUID               `json:"id"`
	Type      domain.ConversationType `json:"type"`
	Title     *string                 `json:"title"`
	CreatedAt time.Time               `json:"created_at"`
}

type ConversationPreviewResponse struct {
	Id          uuid.UUID               `json:"id"`
	Type        domain.ConversationType `json:"type"`
	Title       string                  `json:"title"`
	CreatedAt   time.Time               `json:"created_at"`
	LastMessage *domain.LastMessage     `json:"last_message"`
}

type ParticipantResponse struct {
	Id             int64                  `json:"id"`
	ConversationId uuid.UUID              `json:"conversation_id"`
	UserId         int64                  `json:"user_id"`
	Role           domain.ParticipantRole `json:"role"`
	JoinedAt       time.Time              `json:"joined_at"`
	Username       string                 `json:"username,omitempty"`
	Avatar         *string                `json:"avatar,omitempty"`
}

type MessageResponse struct {
	Id             uuid.UUID  `json:"id"`
	ConversationId uuid.UUID  `json:"conversation_id"`
	SenderId       int64      `json:"sender_id"`
	Text           *string    `json:"text"`
	ReplyTo        *uuid.UUID `json:"reply_to"`
	IsEdited       bool       `json:"is_edited"`
	CreatedAt      time.Time  `json:"created_at"`
	Avatar         *string    `json:"avatar"`
	Username       string     `json:"username"`
}

type AttachmentResponse struct {
	Id        int64                 `json:"id"`
	MessageId uuid.UUID             `json:"message_id"`
	FileUrl   string                `json:"file_url"`
	FileType  domain.AttachmentType `json:"file_type"`
	FileSize  int64                 `json:"file_size"`
	CreatedAt time.Time             `json:"created_at"`
}

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func NewConversationResponse(c *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		Id:        c.Id,
		Type:      c.Type,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
	}
}

func NewConversationPreviewResponse(c *domain.ConversationPreview) ConversationPreviewResponse {
	return ConversationPreviewResponse{
		Id:          c.Id,
		Type:        c.Type,
		Title:       c.Title,
		CreatedAt:   c.CreatedAt,
		LastMessage: c.LastMessage,
	}
}

func NewParticipantResponse(p *domain.Participant) ParticipantResponse {
	return ParticipantResponse{
		Id:             p.Id,
		ConversationId: p.ConversationId,
		UserId:         p.UserId,
		Role:           p.Role,
		JoinedAt:       p.JoinedAt,
		Username:       p.Username,
		Avatar:         p.Avatar,
	}
}

func NewMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		SenderId:       m.SenderId,
		Text:           m.Text,
		ReplyTo:        m.ReplyTo,
		IsEdited:       m.IsEdited,
		CreatedAt:      m.CreatedAt,
		Avatar:         m.Avatar,
		Username:       m.Username,
	}
}

func NewAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		Id:        a.Id,
		MessageId: a.MessageId,
		FileUrl:   a.FileUrl,
		FileType:  a.FileType,
		FileSize:  a.FileSize,
		CreatedAt: a.CreatedAt,
	}
}
