package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/converse-dev/converse/internal/config"
	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/jwt"
	"github.com/converse-dev/converse/internal/middleware"
	"github.com/converse-dev/converse/internal/realtime"
)

// MockChatService implements the service.ChatService interface
type MockChatService struct {
	MockCreateConversation func(creatorId domain.UserId, data domain.ConversationCreationData) (*domain.Conversation, error)
	MockListConversations  func(userId domain.UserId) ([]*domain.ConversationPreview, error)
	MockGetConversation    func(userId domain.UserId, id domain.ConversationId) (*domain.Conversation, error)
	MockRenameConversation func(userId domain.UserId, id domain.ConversationId, title *string) (*domain.Conversation, error)
	MockDeleteConversation func(userId domain.UserId, id domain.ConversationId) error
	MockAddParticipant     func(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId, role *domain.ParticipantRole) (*domain.Participant, error)
	MockListParticipants   func(userId domain.UserId, conversationId domain.ConversationId) ([]*domain.Participant, error)
	MockRemoveParticipant  func(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId) error
	MockSendMessage        func(userId domain.UserId, data domain.MessageCreationData) (*domain.Message, error)
	MockListMessages       func(userId domain.UserId, conversationId domain.ConversationId, limit, offset int) ([]*domain.Message, error)
	MockUpdateMessageText  func(userId domain.UserId, messageId domain.MessageId, text *string) (*domain.Message, error)
	MockDeleteMessage      func(userId domain.UserId, messageId domain.MessageId) error
	MockAttachFile         func(userId domain.UserId, data domain.AttachmentCreationData) (*domain.Attachment, error)
	MockEnsureParticipant  func(userId domain.UserId, conversationId domain.ConversationId) error
}

func (m *MockChatService) CreateConversation(creatorId domain.UserId, data domain.ConversationCreationData) (*domain.Conversation, error) {
	if m.MockCreateConversation != nil {
		return m.MockCreateConversation(creatorId, data)
	}
	return &domain.Conversation{}, nil
}

func (m *MockChatService) ListConversations(userId domain.UserId) ([]*domain.ConversationPreview, error) {
	if m.MockListConversations != nil {
		return m.MockListConversations(userId)
	}
	return nil, nil
}

func (m *MockChatService) GetConversation(userId domain.UserId, id domain.ConversationId) (*domain.Conversation, error) {
	if m.MockGetConversation != nil {
		return m.MockGetConversation(userId, id)
	}
	return &domain.Conversation{}, nil
}

func (m *MockChatService) RenameConversation(userId domain.UserId, id domain.ConversationId, title *string) (*domain.Conversation, error) {
	if m.MockRenameConversation != nil {
		return m.MockRenameConversation(userId, id, title)
	}
	return &domain.Conversation{}, nil
}

func (m *MockChatService) DeleteConversation(userId domain.UserId, id domain.ConversationId) error {
	if m.MockDeleteConversation != nil {
		return m.MockDeleteConversation(userId, id)
	}
	return nil
}

func (m *MockChatService) AddParticipant(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId, role *domain.ParticipantRole) (*domain.Participant, error) {
	if m.MockAddParticipant != nil {
		return m.MockAddParticipant(userId, conversationId, targetUserId, role)
	}
	return &domain.Participant{}, nil
}

func (m *MockChatService) ListParticipants(userId domain.UserId, conversationId domain.ConversationId) ([]*domain.Participant, error) {
	if m.MockListParticipants != nil {
		return m.MockListParticipants(userId, conversationId)
	}
	return nil, nil
}

func (m *MockChatService) RemoveParticipant(userId domain.UserId, conversationId domain.ConversationId, targetUserId domain.UserId) error {
	if m.MockRemoveParticipant != nil {
		return m.MockRemoveParticipant(userId, conversationId, targetUserId)
	}
	return nil
}

func (m *MockChatService) SendMessage(userId domain.UserId, data domain.MessageCreationData) (*domain.Message, error) {
	if m.MockSendMessage != nil {
		return m.MockSendMessage(userId, data)
	}
	return &domain.Message{}, nil
}

func (m *MockChatService) ListMessages(userId domain.UserId, conversationId domain.ConversationId, limit, offset int) ([]*domain.Message, error) {
	if m.MockListMessages != nil {
		return m.MockListMessages(userId, conversationId, limit, offset)
	}
	return nil, nil
}

func (m *MockChatService) UpdateMessageText(userId domain.UserId, messageId domain.MessageId, text *string) (*domain.Message, error) {
	if m.MockUpdateMessageText != nil {
		return m.MockUpdateMessageText(userId, messageId, text)
	}
	return &domain.Message{}, nil
}

func (m *MockChatService) DeleteMessage(userId domain.UserId, messageId domain.MessageId) error {
	if m.MockDeleteMessage != nil {
		return m.MockDeleteMessage(userId, messageId)
	}
	return nil
}

func (m *MockChatService) AttachFile(userId domain.UserId, data domain.AttachmentCreationData) (*domain.Attachment, error) {
	if m.MockAttachFile != nil {
		return m.MockAttachFile(userId, data)
	}
	return &domain.Attachment{}, nil
}

func (m *MockChatService) EnsureParticipant(userId domain.UserId, conversationId domain.ConversationId) error {
	if m.MockEnsureParticipant != nil {
		return m.MockEnsureParticipant(userId, conversationId)
	}
	return nil
}

// MockUserService implements the service.UserService interface
type MockUserService struct {
	MockRegister func(username, email, password string, avatar *string) (*domain.User, error)
	MockLogin    func(usernameOrEmail, password string) (*domain.User, string, error)
	MockGet      func(id domain.UserId) (*domain.User, error)
	MockSearch   func(query string) ([]*domain.User, error)
}

func (m *MockUserService) Register(username, email, password string, avatar *string) (*domain.User, error) {
	if m.MockRegister != nil {
		return m.MockRegister(username, email, password, avatar)
	}
	return &domain.User{}, nil
}

func (m *MockUserService) Login(usernameOrEmail, password string) (*domain.User, string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(usernameOrEmail, password)
	}
	return &domain.User{}, "", nil
}

func (m *MockUserService) Get(id domain.UserId) (*domain.User, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.User{}, nil
}

func (m *MockUserService) Search(query string) ([]*domain.User, error) {
	if m.MockSearch != nil {
		return m.MockSearch(query)
	}
	return nil, nil
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{
		JwtTTL:               time.Hour,
		MaxAttachmentSize:    20 << 20,
		MessagesPerPage:      50,
		MessagesPerPageLimit: 200,
		AllowedOrigins:       []string{"*"},
		Ws: config.Ws{
			ReadLimit:    64 << 10,
			WriteWait:    time.Second,
			PongWait:     time.Minute,
			PingInterval: 30 * time.Second,
			SendBuffer:   16,
		},
	}}
}

// authInject fakes the auth middleware with a fixed caller.
func authInject(uid domain.UserId) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, middleware.WithUserId(r, uid))
		})
	}
}

// setupTestHandler wires the handler onto a chi router with a fixed
// authenticated caller. The websocket route keeps its own auth flow.
func setupTestHandler(chat *MockChatService, user *MockUserService, uid domain.UserId) (*Handler, *chi.Mux) {
	cfg := testConfig()
	hub := realtime.NewHub()
	jwtService := jwt.New("test-secret", cfg.Public.JwtTTL)
	h := New(user, chat, hub, jwtService, cfg, nil)

	r := chi.NewRouter()
	r.Post("/v1/auth/register", h.Register)
	r.Post("/v1/auth/login", h.Login)
	r.Post("/v1/auth/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(authInject(uid))
		r.Get("/v1/users", h.SearchUsers)
		r.Get("/v1/users/me", h.Me)
		r.Post("/v1/conversations", h.CreateConversation)
		r.Get("/v1/conversations", h.ListConversations)
		r.Get("/v1/conversations/{conversation}", h.GetConversation)
		r.Put("/v1/conversations/{conversation}", h.RenameConversation)
		r.Delete("/v1/conversations/{conversation}", h.DeleteConversation)
		r.Post("/v1/conversations/{conversation}/participants", h.AddParticipant)
		r.Get("/v1/conversations/{conversation}/participants", h.ListParticipants)
		r.Delete("/v1/conversations/{conversation}/participants/{user}", h.RemoveParticipant)
		r.Post("/v1/messages", h.CreateMessage)
		r.Get("/v1/messages/{conversation}", h.ListMessages)
		r.Put("/v1/messages/{message}", h.UpdateMessage)
		r.Delete("/v1/messages/{message}", h.DeleteMessage)
		r.Post("/v1/attachments", h.CreateAttachment)
	})

	r.Get("/v1/ws/conversations/{conversation}", h.ConversationSocket)

	return h, r
}
