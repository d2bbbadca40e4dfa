package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"
)

func TestCreateMessageHandler(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		conversationId := uuid.New()
		messageId := uuid.New()
		chat := &MockChatService{
			MockSendMessage: func(userId domain.UserId, data domain.MessageCreationData) (*domain.Message, error) {
				assert.Equal(t, domain.UserId(1), userId)
				assert.Equal(t, domain.UserId(1), data.SenderId)
				assert.Equal(t, conversationId, data.ConversationId)
				require.NotNil(t, data.Text)
				assert.Equal(t, "hello", *data.Text)
				return &domain.Message{Id: messageId, ConversationId: conversationId, SenderId: userId, Text: data.Text}, nil
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		body := []byte(fmt.Sprintf(`{"conversation_id": %q, "text": "hello"}`, conversationId))
		req := httptest.NewRequest(http.MethodPost, "/v1/messages", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		var response struct {
			Id uuid.UUID `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, messageId, response.Id)
	})

	t.Run("not a participant", func(t *testing.T) {
		chat := &MockChatService{
			MockSendMessage: func(userId domain.UserId, data domain.MessageCreationData) (*domain.Message, error) {
				return nil, internal_errors.NotAParticipant
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		body := []byte(fmt.Sprintf(`{"conversation_id": %q, "text": "hi"}`, uuid.New()))
		req := httptest.NewRequest(http.MethodPost, "/v1/messages", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestListMessagesHandler(t *testing.T) {
	t.Run("paging parameters forwarded", func(t *testing.T) {
		conversationId := uuid.New()
		chat := &MockChatService{
			MockListMessages: func(userId domain.UserId, cid domain.ConversationId, limit, offset int) ([]*domain.Message, error) {
				assert.Equal(t, conversationId, cid)
				assert.Equal(t, 10, limit)
				assert.Equal(t, 20, offset)
				text := "hi"
				return []*domain.Message{{Id: uuid.New(), ConversationId: cid, Text: &text}}, nil
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		req := httptest.NewRequest(http.MethodGet, "/v1/messages/"+conversationId.String()+"?limit=10&offset=20", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, router := setupTestHandler(&MockChatService{}, &MockUserService{}, 1)

		req := httptest.NewRequest(http.MethodGet, "/v1/messages/"+uuid.NewString()+"?limit=abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("conversation not found", func(t *testing.T) {
		chat := &MockChatService{
			MockListMessages: func(userId domain.UserId, cid domain.ConversationId, limit, offset int) ([]*domain.Message, error) {
				return nil, internal_errors.ConversationNotFound
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		req := httptest.NewRequest(http.MethodGet, "/v1/messages/"+uuid.NewString(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUpdateMessageHandler(t *testing.T) {
	t.Run("owner edits", func(t *testing.T) {
		messageId := uuid.New()
		chat := &MockChatService{
			MockUpdateMessageText: func(userId domain.UserId, mid domain.MessageId, text *string) (*domain.Message, error) {
				assert.Equal(t, messageId, mid)
				require.NotNil(t, text)
				assert.Equal(t, "fixed", *text)
				return &domain.Message{Id: mid, Text: text, IsEdited: true}, nil
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		body := []byte(`{"text": "fixed"}`)
		req := httptest.NewRequest(http.MethodPut, "/v1/messages/"+messageId.String(), bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"is_edited":true`)
	})

	t.Run("not the owner", func(t *testing.T) {
		chat := &MockChatService{
			MockUpdateMessageText: func(userId domain.UserId, mid domain.MessageId, text *string) (*domain.Message, error) {
				return nil, internal_errors.NotMessageOwner
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		body := []byte(`{"text": "hijack"}`)
		req := httptest.NewRequest(http.MethodPut, "/v1/messages/"+uuid.NewString(), bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestDeleteMessageHandler(t *testing.T) {
	chat := &MockChatService{
		MockDeleteMessage: func(userId domain.UserId, mid domain.MessageId) error {
			return nil
		},
	}
	_, router := setupTestHandler(chat, &MockUserService{}, 1)

	req := httptest.NewRequest(http.MethodDelete, "/v1/messages/"+uuid.NewString(), nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateAttachmentHandler(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		messageId := uuid.New()
		chat := &MockChatService{
			MockAttachFile: func(userId domain.UserId, data domain.AttachmentCreationData) (*domain.Attachment, error) {
				assert.Equal(t, messageId, data.MessageId)
				assert.Equal(t, domain.AttachmentImage, data.FileType)
				assert.Equal(t, int64(1024), data.FileSize)
				return &domain.Attachment{Id: 1, MessageId: data.MessageId, FileUrl: data.FileUrl, FileType: data.FileType, FileSize: data.FileSize}, nil
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		body := []byte(fmt.Sprintf(`{"message_id": %q, "file_url": "https://cdn.example.com/cat.png", "file_type": "image", "file_size": 1024}`, messageId))
		req := httptest.NewRequest(http.MethodPost, "/v1/attachments", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("too large", func(t *testing.T) {
		chat := &MockChatService{
			MockAttachFile: func(userId domain.UserId, data domain.AttachmentCreationData) (*domain.Attachment, error) {
				return nil, internal_errors.AttachmentTooLarge
			},
		}
		_, router := setupTestHandler(chat, &MockUserService{}, 1)

		body := []byte(fmt.Sprintf(`{"message_id": %q, "file_url": "https://cdn.example.com/big.bin", "file_type": "file", "file_size": 99999999}`, uuid.New()))
		req := httptest.NewRequest(http.MethodPost, "/v1/attachments", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
