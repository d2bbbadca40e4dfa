package errors

import "net/http"

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Sentinel errors for every failure kind the chat layer can produce.
// Compared with errors.Is, so callers can branch on the exact kind
// while handlers fall back to the embedded status code.
var (
	NotAParticipant      = &ErrorWithStatusCode{"User is not a participant of the conversation", http.StatusForbidden}
	NotAnAdmin           = &ErrorWithStatusCode{"User is not an admin of the conversation", http.StatusForbidden}
	ConversationNotFound = &ErrorWithStatusCode{"Conversation not found", http.StatusNotFound}
	MessageNotFound      = &ErrorWithStatusCode{"Message not found", http.StatusNotFound}
	NotMessageOwner      = &ErrorWithStatusCode{"Cannot modify another user's message", http.StatusForbidden}
	AttachmentTooLarge   = &ErrorWithStatusCode{"File is too large", http.StatusBadRequest}
	IdentityUnresolvable = &ErrorWithStatusCode{"Could not validate credentials", http.StatusUnauthorized}
	UserNotFound         = &ErrorWithStatusCode{"User not found", http.StatusNotFound}
	WrongPassword        = &ErrorWithStatusCode{"Incorrect password", http.StatusUnauthorized}
	UserAlreadyExists    = &ErrorWithStatusCode{"Username or email already taken", http.StatusConflict}

	InvalidConversationType = &ErrorWithStatusCode{"Invalid conversation type", http.StatusBadRequest}
	InvalidParticipantRole  = &ErrorWithStatusCode{"Invalid participant role", http.StatusBadRequest}
	InvalidAttachmentType   = &ErrorWithStatusCode{"Invalid attachment type", http.StatusBadRequest}
)
