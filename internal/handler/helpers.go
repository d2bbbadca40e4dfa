package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/converse-dev/converse/internal/domain"
	internal_errors "github.com/converse-dev/converse/internal/errors"
	"github.com/converse-dev/converse/internal/middleware"
)

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, &internal_errors.ErrorWithStatusCode{Message: "invalid " + name + ": must be a uuid", StatusCode: http.StatusBadRequest}
	}
	return id, nil
}

func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, &internal_errors.ErrorWithStatusCode{Message: "invalid " + paramName + ": must be an integer", StatusCode: http.StatusBadRequest}
	}
	return val, nil
}

// callerId reads the user id stored by the auth middleware.
func callerId(w http.ResponseWriter, r *http.Request) (domain.UserId, bool) {
	uid, ok := middleware.UserId(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return uid, true
}
