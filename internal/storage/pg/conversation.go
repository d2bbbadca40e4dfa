package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// CreateConversation inserts the conversation together with its initial
// participant set in one transaction. Either both land or neither does.
func (s *Storage) CreateConversation(conversation *domain.Conversation, participants []domain.Participant) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	_, err = tx.Exec(`
	INSERT INTO conversations(id, type, title, created_at)
	VALUES($1, $2, $3, $4)`,
		conversation.Id, conversation.Type, conversation.Title, conversation.CreatedAt)
	if err != nil {
		return err
	}

	for i := range participants {
		p := &participants[i]
		err = tx.QueryRow(`
		INSERT INTO conversation_participants(conversation_id, user_id, role, joined_at)
		VALUES($1, $2, $3, $4)
		RETURNING id`,
			p.ConversationId, p.UserId, p.Role, p.JoinedAt).Scan(&p.Id)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) GetConversation(id domain.ConversationId) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := s.db.QueryRow(`
	SELECT id, type, title, created_at
	FROM conversations
	WHERE id = $1`, id).Scan(&conversation.Id, &conversation.Type, &conversation.Title, &conversation.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.ConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// ListConversationsForUser returns every conversation the user belongs to,
// newest first. Private conversations are titled with the other
// participant's username; every row carries its latest message, if any.
func (s *Storage) ListConversationsForUser(userId domain.UserId) ([]*domain.ConversationPreview, error) {
	rows, err := s.db.Query(`
	SELECT
		c.id,
		c.type,
		CASE
			WHEN c.type = 'private' THEN COALESCE(partner.username, c.title, '')
			ELSE COALESCE(c.title, '')
		END AS title,
		c.created_at,
		lm.id,
		lm.sender_id,
		lm.text,
		lm.created_at
	FROM conversations c
	JOIN conversation_participants cp ON cp.conversation_id = c.id AND cp.user_id = $1
	LEFT JOIN LATERAL (
		SELECT u.username
		FROM conversation_participants other
		JOIN users u ON u.id = other.user_id
		WHERE other.conversation_id = c.id AND other.user_id != $1
		LIMIT 1
	) partner ON c.type = 'private'
	LEFT JOIN LATERAL (
		SELECT m.id, m.sender_id, m.text, m.created_at
		FROM messages m
		WHERE m.conversation_id = c.id
		ORDER BY m.created_at DESC
		LIMIT 1
	) lm ON TRUE
	ORDER BY c.created_at DESC`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var previews []*domain.ConversationPreview
	for rows.Next() {
		var preview domain.ConversationPreview
		var lmId uuid.NullUUID
		var lmSenderId sql.NullInt64
		var lmText *string
		var lmCreatedAt sql.NullTime
		err := rows.Scan(&preview.Id, &preview.Type, &preview.Title, &preview.CreatedAt,
			&lmId, &lmSenderId, &lmText, &lmCreatedAt)
		if err != nil {
			return nil, err
		}
		if lmId.Valid {
			preview.LastMessage = &domain.LastMessage{
				Id:        lmId.UUID,
				SenderId:  lmSenderId.Int64,
				Text:      lmText,
				CreatedAt: lmCreatedAt.Time,
			}
		}
		previews = append(previews, &preview)
	}
	return previews, rows.Err()
}

func (s *Storage) UpdateConversationTitle(id domain.ConversationId, title *string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	err := s.db.QueryRow(`
	UPDATE conversations
	SET title = $1
	WHERE id = $2
	RETURNING id, type, title, created_at`,
		title, id).Scan(&conversation.Id, &conversation.Type, &conversation.Title, &conversation.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.ConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (s *Storage) DeleteConversation(id domain.ConversationId) error {
	result, err := s.db.Exec(`DELETE FROM conversations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return internal_errors.ConversationNotFound
	}
	return nil
}
