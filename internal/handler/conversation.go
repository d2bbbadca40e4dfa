package handler

import (
	"net/http"

	"github.com/converse-dev/converse/internal/api"
	"github.com/converse-dev/converse/internal/domain"
	"github.com/converse-dev/converse/internal/utils"
)

func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}

	var body api.CreateConversationRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	conversation, err := h.chat.CreateConversation(uid, domain.ConversationCreationData{
		Type:           body.Type,
		Title:          body.Title,
		ParticipantIds: body.ParticipantIds,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewConversationResponse(conversation))
}

func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}

	previews, err := h.chat.ListConversations(uid)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]api.ConversationPreviewResponse, 0, len(previews))
	for _, preview := range previews {
		response = append(response, api.NewConversationPreviewResponse(preview))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	id, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	conversation, err := h.chat.GetConversation(uid, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewConversationResponse(conversation))
}

func (h *Handler) RenameConversation(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	id, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.RenameConversationRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	conversation, err := h.chat.RenameConversation(uid, id, body.Title)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewConversationResponse(conversation))
}

func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	id, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.chat.DeleteConversation(uid, id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
