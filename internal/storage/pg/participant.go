package pg

import (
	"database/sql"
	"errors"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"

	_ "github.com/lib/pq"
)

// AddParticipant inserts the membership row. A user already in the
// conversation is not an error; the existing row is returned unchanged.
func (s *Storage) AddParticipant(participant *domain.Participant) (*domain.Participant, error) {
	err := s.db.QueryRow(`
	INSERT INTO conversation_participants(conversation_id, user_id, role, joined_at)
	VALUES($1, $2, $3, $4)
	ON CONFLICT (conversation_id, user_id) DO NOTHING
	RETURNING id`,
		participant.ConversationId, participant.UserId, participant.Role, participant.JoinedAt).Scan(&participant.Id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// conflict: the row already existed
			return s.GetParticipant(participant.ConversationId, participant.UserId)
		}
		return nil, err
	}
	return s.GetParticipant(participant.ConversationId, participant.UserId)
}

// GetParticipant returns (nil, nil) when the user is not in the
// conversation. Membership checks rely on that distinction.
func (s *Storage) GetParticipant(conversationId domain.ConversationId, userId domain.UserId) (*domain.Participant, error) {
	var p domain.Participant
	err := s.db.QueryRow(`
	SELECT cp.id, cp.conversation_id, cp.user_id, cp.role, cp.joined_at, u.username, u.avatar
	FROM conversation_participants cp
	JOIN users u ON u.id = cp.user_id
	WHERE cp.conversation_id = $1 AND cp.user_id = $2`,
		conversationId, userId).Scan(&p.Id, &p.ConversationId, &p.UserId, &p.Role, &p.JoinedAt, &p.Username, &p.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Storage) ListParticipants(conversationId domain.ConversationId) ([]*domain.Participant, error) {
	rows, err := s.db.Query(`
	SELECT cp.id, cp.conversation_id, cp.user_id, cp.role, cp.joined_at, u.username, u.avatar
	FROM conversation_participants cp
	JOIN users u ON u.id = cp.user_id
	WHERE cp.conversation_id = $1
	ORDER BY cp.joined_at, cp.id`, conversationId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.Id, &p.ConversationId, &p.UserId, &p.Role, &p.JoinedAt, &p.Username, &p.Avatar); err != nil {
			return nil, err
		}
		participants = append(participants, &p)
	}
	return participants, rows.Err()
}

// RemoveParticipant is a no-op when the user is not in the conversation.
func (s *Storage) RemoveParticipant(conversationId domain.ConversationId, userId domain.UserId) error {
	_, err := s.db.Exec(`
	DELETE FROM conversation_participants
	WHERE conversation_id = $1 AND user_id = $2`, conversationId, userId)
	return err
}

func (s *Storage) UpdateParticipantRole(conversationId domain.ConversationId, userId domain.UserId, role domain.ParticipantRole) (*domain.Participant, error) {
	result, err := s.db.Exec(`
	UPDATE conversation_participants
	SET role = $1
	WHERE conversation_id = $2 AND user_id = $3`, role, conversationId, userId)
	if err != nil {
		return nil, err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if updated == 0 {
		return nil, internal_errors.NotAParticipant
	}
	return s.GetParticipant(conversationId, userId)
}
