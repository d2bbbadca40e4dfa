package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"

	_ "github.com/lib/pq"
)

// CreateMessage persists the message and returns it enriched with the
// sender's username and avatar, ready for fan-out.
func (s *Storage) CreateMessage(message *domain.Message) (*domain.Message, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	_, err = tx.Exec(`
	INSERT INTO messages(id, conversation_id, sender_id, text, reply_to, is_edited, created_at)
	VALUES($1, $2, $3, $4, $5, FALSE, $6)`,
		message.Id, message.ConversationId, message.SenderId, message.Text, message.ReplyTo, message.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(`
	SELECT username, avatar FROM users WHERE id = $1`,
		message.SenderId).Scan(&message.Username, &message.Avatar)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return message, nil
}

func (s *Storage) GetMessage(id domain.MessageId) (*domain.Message, error) {
	var msg domain.Message
	err := s.db.QueryRow(`
	SELECT m.id, m.conversation_id, m.sender_id, m.text, m.reply_to, m.is_edited, m.created_at, u.username, u.avatar
	FROM messages m
	JOIN users u ON u.id = m.sender_id
	WHERE m.id = $1`, id).Scan(
		&msg.Id, &msg.ConversationId, &msg.SenderId, &msg.Text, &msg.ReplyTo, &msg.IsEdited, &msg.CreatedAt, &msg.Username, &msg.Avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.MessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns a page of messages in ascending creation order.
func (s *Storage) ListMessages(conversationId domain.ConversationId, limit, offset int) ([]*domain.Message, error) {
	rows, err := s.db.Query(`
	SELECT m.id, m.conversation_id, m.sender_id, m.text, m.reply_to, m.is_edited, m.created_at, u.username, u.avatar
	FROM messages m
	JOIN users u ON u.id = m.sender_id
	WHERE m.conversation_id = $1
	ORDER BY m.created_at, m.id
	LIMIT $2 OFFSET $3`, conversationId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var msg domain.Message
		err := rows.Scan(&msg.Id, &msg.ConversationId, &msg.SenderId, &msg.Text, &msg.ReplyTo, &msg.IsEdited, &msg.CreatedAt, &msg.Username, &msg.Avatar)
		if err != nil {
			return nil, err
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

func (s *Storage) UpdateMessageText(id domain.MessageId, text *string) (*domain.Message, error) {
	result, err := s.db.Exec(`
	UPDATE messages
	SET text = $1, is_edited = TRUE
	WHERE id = $2`, text, id)
	if err != nil {
		return nil, err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if updated == 0 {
		return nil, internal_errors.MessageNotFound
	}
	return s.GetMessage(id)
}

func (s *Storage) DeleteMessage(id domain.MessageId) error {
	result, err := s.db.Exec(`DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return internal_errors.MessageNotFound
	}
	return nil
}
