package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"
)

// Mock structs
type MockParticipantStorage struct {
	GetParticipantFunc func(conversationId domain.ConversationId, userId domain.UserId) (*domain.Participant, error)
}

func (m *MockParticipantStorage) GetParticipant(conversationId domain.ConversationId, userId domain.UserId) (*domain.Participant, error) {
	if m.GetParticipantFunc != nil {
		return m.GetParticipantFunc(conversationId, userId)
	}
	return nil, nil
}

func TestRequireParticipant(t *testing.T) {
	storage := &MockParticipantStorage{}
	membership := NewMembership(storage)
	conversationId := uuid.New()

	// No participant row
	err := membership.RequireParticipant(1, conversationId)
	if !errors.Is(err, internal_errors.NotAParticipant) {
		t.Errorf("Expected NotAParticipant, got: %v", err)
	}

	// Participant exists
	storage.GetParticipantFunc = func(cid domain.ConversationId, uid domain.UserId) (*domain.Participant, error) {
		if cid != conversationId || uid != 1 {
			t.Errorf("Unexpected args: %v %v", cid, uid)
		}
		return &domain.Participant{ConversationId: cid, UserId: uid, Role: domain.RoleMember}, nil
	}
	if err := membership.RequireParticipant(1, conversationId); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	// Storage failure propagates
	mockError := errors.New("Mock GetParticipantFunc")
	storage.GetParticipantFunc = func(domain.ConversationId, domain.UserId) (*domain.Participant, error) {
		return nil, mockError
	}
	if err := membership.RequireParticipant(1, conversationId); !errors.Is(err, mockError) {
		t.Errorf("Expected %v, got: %v", mockError, err)
	}
}

func TestRequireAdmin(t *testing.T) {
	storage := &MockParticipantStorage{}
	membership := NewMembership(storage)
	conversationId := uuid.New()

	// No participant row
	err := membership.RequireAdmin(1, conversationId)
	if !errors.Is(err, internal_errors.NotAParticipant) {
		t.Errorf("Expected NotAParticipant, got: %v", err)
	}

	// Member but not admin
	storage.GetParticipantFunc = func(cid domain.ConversationId, uid domain.UserId) (*domain.Participant, error) {
		return &domain.Participant{ConversationId: cid, UserId: uid, Role: domain.RoleMember}, nil
	}
	err = membership.RequireAdmin(1, conversationId)
	if !errors.Is(err, internal_errors.NotAnAdmin) {
		t.Errorf("Expected NotAnAdmin, got: %v", err)
	}

	// Admin
	storage.GetParticipantFunc = func(cid domain.ConversationId, uid domain.UserId) (*domain.Participant, error) {
		return &domain.Participant{ConversationId: cid, UserId: uid, Role: domain.RoleAdmin}, nil
	}
	if err := membership.RequireAdmin(1, conversationId); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
