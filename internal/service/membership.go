package service

import (
	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/errors"
)

// ParticipantStorage is the slice of storage the membership guard needs.
type ParticipantStorage interface {
	GetParticipant(conversationId domain.ConversationId, userId domain.UserId) (*domain.Participant, error)
}

// Membership answers "is this user a participant / an admin" for a
// conversation. It re-reads storage on every call: membership can change
// between requests and must never be served stale.
type Membership struct {
	storage ParticipantStorage
}

func NewMembership(storage ParticipantStorage) *Membership {
	return &Membership{storage}
}

// RequireParticipant succeeds silently when a participant row exists.
func (m *Membership) RequireParticipant(userId domain.UserId, conversationId domain.ConversationId) error {
	participant, err := m.storage.GetParticipant(conversationId, userId)
	if err != nil {
		return err
	}
	if participant == nil {
		return errors.NotAParticipant
	}
	return nil
}

// RequireAdmin succeeds only when the participant exists and holds the
// admin role.
func (m *Membership) RequireAdmin(userId domain.UserId, conversationId domain.ConversationId) error {
	participant, err := m.storage.GetParticipant(conversationId, userId)
	if err != nil {
		return err
	}
	if participant == nil {
		return errors.NotAParticipant
	}
	if participant.Role != domain.RoleAdmin {
		return errors.NotAnAdmin
	}
	return nil
}
