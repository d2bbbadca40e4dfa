package handler

import (
	"net/http"

	"github.com/converse-dev/converse/internal/api"
	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/utils"
)

func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}

	var body api.CreateMessageRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	message, err := h.chat.SendMessage(uid, domain.MessageCreationData{
		ConversationId: body.ConversationId,
		SenderId:       uid,
		Text:           body.Text,
		ReplyTo:        body.ReplyTo,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewMessageResponse(message))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	conversationId, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	limit, offset := 0, 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err = parseIntParam(raw, "limit"); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err = parseIntParam(raw, "offset"); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	messages, err := h.chat.ListMessages(uid, conversationId, limit, offset)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]api.MessageResponse, 0, len(messages))
	for _, message := range messages {
		response = append(response, api.NewMessageResponse(message))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	messageId, err := parseUUIDParam(r, "message")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.UpdateMessageRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	message, err := h.chat.UpdateMessageText(uid, messageId, body.Text)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewMessageResponse(message))
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	messageId, err := parseUUIDParam(r, "message")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.chat.DeleteMessage(uid, messageId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
