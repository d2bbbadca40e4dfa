package pg

import (
	"time"

	"github.com/converse-dev/converse/internal/domain"

	_ "github.com/lib/pq"
)

func (s *Storage) CreateAttachment(attachment *domain.Attachment) (*domain.Attachment, error) {
	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway round to microsecond
	err := s.db.QueryRow(`
	INSERT INTO attachments(message_id, file_url, file_type, file_size, created_at)
	VALUES($1, $2, $3, $4, $5)
	RETURNING id`,
		attachment.MessageId, attachment.FileUrl, attachment.FileType, attachment.FileSize, createdTs).Scan(&attachment.Id)
	if err != nil {
		return nil, err
	}
	attachment.CreatedAt = createdTs
	return attachment, nil
}

func (s *Storage) ListAttachments(messageId domain.MessageId) ([]*domain.Attachment, error) {
	rows, err := s.db.Query(`
	SELECT id, message_id, file_url, file_type, file_size, created_at
	FROM attachments
	WHERE message_id = $1
	ORDER BY id`, messageId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*domain.Attachment
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(&a.Id, &a.MessageId, &a.FileUrl, &a.FileType, &a.FileSize, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, &a)
	}
	return attachments, rows.Err()
}
