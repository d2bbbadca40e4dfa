package handler

import (
	"net/http"
	"time"

	"github.com/converse-dev/converse/internal/logger"
	"github.com/converse-dev/converse/internal/middleware"
	"github.com/converse-dev/converse/internal/realtime"
	"github.com/converse-dev/converse/internal/utils"
)

// ConversationSocket upgrades an authorized request to a realtime session
// on one conversation. Identity and membership are resolved before the
// upgrade, so a rejected caller gets a plain HTTP status instead of a
// half-open socket.
func (h *Handler) ConversationSocket(w http.ResponseWriter, r *http.Request) {
	conversationId, err := parseUUIDParam(r, "conversation")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	// browser websocket clients cannot set headers, the token rides in
	// the query string
	token := r.URL.Query().Get("Authorization")
	if token == "" {
		token = middleware.TokenFromRequest(r)
	}
	uid, err := h.jwt.DecodeToken(token)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.chat.EnsureParticipant(uid, conversationId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Debug("websocket upgrade failed", "error", err)
		return
	}

	wsCfg := h.cfg.Public.Ws
	conn.SetReadLimit(wsCfg.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsCfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsCfg.PongWait))
	})

	client := realtime.NewClient(conn, wsCfg)
	go client.WritePump()

	session := realtime.NewSession(h.chat, h.hub, conn, client, uid, conversationId)
	session.Run()
}
