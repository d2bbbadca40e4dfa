package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/converse-dev/converse/internal/api"
	"github.com/converse-dev/converse/internal/utils"
)

func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	conversationId, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	var body api.AddParticipantRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	participant, err := h.chat.AddParticipant(uid, conversationId, body.UserId, body.Role)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewParticipantResponse(participant))
}

func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	conversationId, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	participants, err := h.chat.ListParticipants(uid, conversationId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]api.ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		response = append(response, api.NewParticipantResponse(participant))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}
	conversationId, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	targetId, err := parseIntParam(chi.URLParam(r, "user"), "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.chat.RemoveParticipant(uid, conversationId, int64(targetId)); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
