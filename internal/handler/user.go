package handler

import (
	"net/http"

	"github.com/converse-dev/converse/internal/api"
	"github.com/converse-dev/converse/internal/utils"
)

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerId(w, r)
	if !ok {
		return
	}

	user, err := h.user.Get(uid)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewUserResponse(user))
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerId(w, r); !ok {
		return
	}

	query := r.URL.Query().Get("username")
	if query == "" {
		http.Error(w, "username query parameter is required", http.StatusBadRequest)
		return
	}

	users, err := h.user.Search(query)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := make([]api.UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, api.NewUserResponse(user))
	}
	writeJSON(w, http.StatusOK, response)
}
