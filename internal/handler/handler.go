package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/converse-dev/converse/internal/config"
	"github.com/converse-dev/converse/internal/jwt"
	"github.com/converse-dev/converse/internal/logger"
	"github.com/converse-dev/converse/internal/realtime"
	"github.com/converse-dev/converse/internal/service"
)

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping() error
}

type Handler struct {
	user     service.UserService
	chat     service.ChatService
	hub      *realtime.Hub
	jwt      jwt.JwtService
	cfg      *config.Config
	health   Pinger
	upgrader websocket.Upgrader
}

func New(user service.UserService, chat service.ChatService, hub *realtime.Hub, jwtService jwt.JwtService, cfg *config.Config, health Pinger) *Handler {
	return &Handler{
		user:   user,
		chat:   chat,
		hub:    hub,
		jwt:    jwtService,
		cfg:    cfg,
		health: health,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.Public.AllowedOrigins),
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encode response", "error", err)
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, candidate := range allowed {
			if candidate == "*" || candidate == origin {
				return true
			}
		}
		return false
	}
}
