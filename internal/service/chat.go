package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/errors"
)

type ChatService interface {
	CreateConversation(creatorId domain.UserId, data domain.ConversationCreationData) (*domain.Conversation, error)
	ListConversations(userId domain.UserId) ([]*domain.ConversationPreview, error)
	GetConversation(userId domain.UserId, id domain.ConversationId) (*domain.Conversation, error)
	RenameConversation(userId domain.UserId, id domain.ConversationId, title *string) (*domain.Conversation, error)
	DeleteConversation(userId domain.UserId, id domain.ConversationId) error

	AddParticipant(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId, role *domain.ParticipantRole) (*domain.Participant, error)
	ListParticipants(userId domain.UserId, conversationId domain.ConversationId) ([]*domain.Participant, error)
	RemoveParticipant(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId) error

	SendMessage(userId domain.UserId, data domain.MessageCreationData) (*domain.Message, error)
	ListMessages(userId domain.UserId, conversationId domain.ConversationId, limit, offset int) ([]*domain.Message, error)
	UpdateMessageText(userId domain.UserId, messageId domain.MessageId, text *string) (*domain.Message, error)
	DeleteMessage(userId domain.UserId, messageId domain.MessageId) error

	AttachFile(userId domain.UserId, data domain.AttachmentCreationData) (*domain.Attachment, error)

	EnsureParticipant(userId domain.UserId, conversationId domain.ConversationId) error
}

// ChatStorage is the persistence contract the orchestrator depends on.
// Every method is atomic; CreateConversation writes the conversation and
// all participant rows in one transaction.
type ChatStorage interface {
	CreateConversation(conversation *domain.Conversation, participants []domain.Participant) error
	GetConversation(id domain.ConversationId) (*domain.Conversation, error)
	ListConversationsForUser(userId domain.UserId) ([]*domain.ConversationPreview, error)
	UpdateConversationTitle(id domain.ConversationId, title *string) (*domain.Conversation, error)
	DeleteConversation(id domain.ConversationId) error

	AddParticipant(participant *domain.Participant) (*domain.Participant, error)
	GetParticipant(conversationId domain.ConversationId, userId domain.UserId) (*domain.Participant, error)
	ListParticipants(conversationId domain.ConversationId) ([]*domain.Participant, error)
	RemoveParticipant(conversationId domain.ConversationId, userId domain.UserId) error
	UpdateParticipantRole(conversationId domain.ConversationId, userId domain.UserId, role domain.ParticipantRole) (*domain.Participant, error)

	CreateMessage(message *domain.Message) (*domain.Message, error)
	GetMessage(id domain.MessageId) (*domain.Message, error)
	ListMessages(conversationId domain.ConversationId, limit, offset int) ([]*domain.Message, error)
	UpdateMessageText(id domain.MessageId, text *string) (*domain.Message, error)
	DeleteMessage(id domain.MessageId) error

	CreateAttachment(attachment *domain.Attachment) (*domain.Attachment, error)
	ListAttachments(messageId domain.MessageId) ([]*domain.Attachment, error)
}

// MessagePublisher receives a message after its persistence commit.
// The realtime hub implements it; a nil publisher disables push delivery.
type MessagePublisher interface {
	MessageCreated(message *domain.Message)
}

type Chat struct {
	storage           ChatStorage
	membership        *Membership
	publisher         MessagePublisher
	maxAttachmentSize int64
	messagesPerPage   int
	messagesPageLimit int
	sanitizer         *bluemonday.Policy
}

func NewChat(storage ChatStorage, membership *Membership, publisher MessagePublisher, maxAttachmentSize int64, messagesPerPage, messagesPageLimit int) *Chat {
	return &Chat{
		storage:           storage,
		membership:        membership,
		publisher:         publisher,
		maxAttachmentSize: maxAttachmentSize,
		messagesPerPage:   messagesPerPage,
		messagesPageLimit: messagesPageLimit,
		sanitizer:         bluemonday.StrictPolicy(),
	}
}

func (c *Chat) now() time.Time {
	return time.Now().UTC().Round(time.Microsecond) // database anyway round to microsecond
}

func (c *Chat) sanitize(text *string) *string {
	if text == nil {
		return nil
	}
	clean := c.sanitizer.Sanitize(*text)
	return &clean
}

// CreateConversation persists the conversation with the creator as admin and
// every other distinct requested user as member, all in one transaction.
func (c *Chat) CreateConversation(creatorId domain.UserId, data domain.ConversationCreationData) (*domain.Conversation, error) {
	if !data.Type.Valid() {
		return nil, errors.InvalidConversationType
	}

	now := c.now()
	conversation := &domain.Conversation{
		Id:        uuid.New(),
		Type:      data.Type,
		Title:     data.Title,
		CreatedAt: now,
	}

	participants := []domain.Participant{{
		ConversationId: conversation.Id,
		UserId:         creatorId,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}}
	seen := map[domain.UserId]bool{creatorId: true}
	for _, userId := range data.ParticipantIds {
		if seen[userId] {
			continue
		}
		seen[userId] = true
		participants = append(participants, domain.Participant{
			ConversationId: conversation.Id,
			UserId:         userId,
			Role:           domain.RoleMember,
			JoinedAt:       now,
		})
	}

	if err := c.storage.CreateConversation(conversation, participants); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (c *Chat) ListConversations(userId domain.UserId) ([]*domain.ConversationPreview, error) {
	return c.storage.ListConversationsForUser(userId)
}

func (c *Chat) GetConversation(userId domain.UserId, id domain.ConversationId) (*domain.Conversation, error) {
	if err := c.membership.RequireParticipant(userId, id); err != nil {
		return nil, err
	}
	return c.storage.GetConversation(id)
}

func (c *Chat) RenameConversation(userId domain.UserId, id domain.ConversationId, title *string) (*domain.Conversation, error) {
	if err := c.membership.RequireAdmin(userId, id); err != nil {
		return nil, err
	}
	return c.storage.UpdateConversationTitle(id, title)
}

func (c *Chat) DeleteConversation(userId domain.UserId, id domain.ConversationId) error {
	if err := c.membership.RequireAdmin(userId, id); err != nil {
		return err
	}
	return c.storage.DeleteConversation(id)
}

// AddParticipant is idempotent: when the target already participates, the
// existing row is returned unchanged. A requested role is applied in a
// second step after the member insert.
func (c *Chat) AddParticipant(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId, role *domain.ParticipantRole) (*domain.Participant, error) {
	if role != nil && !role.Valid() {
		return nil, errors.InvalidParticipantRole
	}
	if err := c.membership.RequireAdmin(userId, conversationId); err != nil {
		return nil, err
	}

	existing, err := c.storage.GetParticipant(conversationId, targetUserId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	participant, err := c.storage.AddParticipant(&domain.Participant{
		ConversationId: conversationId,
		UserId:         targetUserId,
		Role:           domain.RoleMember,
		JoinedAt:       c.now(),
	})
	if err != nil {
		return nil, err
	}

	if role != nil && *role != domain.RoleMember {
		return c.storage.UpdateParticipantRole(conversationId, targetUserId, *role)
	}
	return participant, nil
}

func (c *Chat) ListParticipants(userId domain.UserId, conversationId domain.ConversationId) ([]*domain.Participant, error) {
	if err := c.membership.RequireParticipant(userId, conversationId); err != nil {
		return nil, err
	}
	return c.storage.ListParticipants(conversationId)
}

// RemoveParticipant is a no-op when the target is not a participant.
func (c *Chat) RemoveParticipant(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId) error {
	if err := c.membership.RequireAdmin(userId, conversationId); err != nil {
		return err
	}
	return c.storage.RemoveParticipant(conversationId, targetUserId)
}

// SendMessage persists the message and hands it to the publisher only after
// the storage commit, so subscribers never see an uncommitted message.
func (c *Chat) SendMessage(userId domain.UserId, data domain.MessageCreationData) (*domain.Message, error) {
	if err := c.membership.RequireParticipant(userId, data.ConversationId); err != nil {
		return nil, err
	}

	// a reply must point at a message of the same conversation
	if data.ReplyTo != nil {
		parent, err := c.storage.GetMessage(*data.ReplyTo)
		if err != nil {
			return nil, err
		}
		if parent.ConversationId != data.ConversationId {
			return nil, errors.MessageNotFound
		}
	}

	message, err := c.storage.CreateMessage(&domain.Message{
		Id:             uuid.New(),
		ConversationId: data.ConversationId,
		SenderId:       userId,
		Text:           c.sanitize(data.Text),
		ReplyTo:        data.ReplyTo,
		IsEdited:       false,
		CreatedAt:      c.now(),
	})
	if err != nil {
		return nil, err
	}

	if c.publisher != nil {
		c.publisher.MessageCreated(message)
	}
	return message, nil
}

func (c *Chat) ListMessages(userId domain.UserId, conversationId domain.ConversationId, limit, offset int) ([]*domain.Message, error) {
	if err := c.membership.RequireParticipant(userId, conversationId); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = c.messagesPerPage
	}
	if limit > c.messagesPageLimit {
		limit = c.messagesPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return c.storage.ListMessages(conversationId, limit, offset)
}

func (c *Chat) UpdateMessageText(userId domain.UserId, messageId domain.MessageId, text *string) (*domain.Message, error) {
	message, err := c.storage.GetMessage(messageId)
	if err != nil {
		return nil, err
	}
	if message.SenderId != userId {
		return nil, errors.NotMessageOwner
	}
	return c.storage.UpdateMessageText(messageId, c.sanitize(text))
}

// DeleteMessage is a no-op when the message is already gone.
func (c *Chat) DeleteMessage(userId domain.UserId, messageId domain.MessageId) error {
	message, err := c.storage.GetMessage(messageId)
	if err != nil {
		if err == errors.MessageNotFound {
			return nil
		}
		return err
	}
	if message.SenderId != userId {
		return errors.NotMessageOwner
	}
	return c.storage.DeleteMessage(messageId)
}

func (c *Chat) AttachFile(userId domain.UserId, data domain.AttachmentCreationData) (*domain.Attachment, error) {
	message, err := c.storage.GetMessage(data.MessageId)
	if err != nil {
		return nil, err
	}
	if err := c.membership.RequireParticipant(userId, message.ConversationId); err != nil {
		return nil, err
	}
	if data.FileSize > c.maxAttachmentSize {
		return nil, errors.AttachmentTooLarge
	}
	if !data.FileType.Valid() {
		return nil, errors.InvalidAttachmentType
	}
	return c.storage.CreateAttachment(&domain.Attachment{
		MessageId: data.MessageId,
		FileUrl:   data.FileUrl,
		FileType:  data.FileType,
		FileSize:  data.FileSize,
		CreatedAt: c.now(),
	})
}

// EnsureParticipant exposes the membership check for the realtime layer.
func (c *Chat) EnsureParticipant(userId domain.UserId, conversationId domain.ConversationId) error {
	return c.membership.RequireParticipant(userId, conversationId)
}
