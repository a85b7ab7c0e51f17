package handler

import (
	"log"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/chathub"

	"github.com/gin-gonic/gin"
)

// ServeWebSocket authenticates the connection token and upgrades the request.
// The token comes from the "token" query parameter, since browsers cannot set
// headers on a WebSocket handshake, or from a bearer Authorization header.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token, _ = bearerToken(c)
	}
	if token == "" {
		respondError(c, apperr.Auth("connection token missing"))
		return
	}

	client, err := h.Hub.Connect(c.Request.Context(), token, func(userID string) (chathub.Client, error) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return nil, err
		}
		return chathub.NewWebSocketClient(conn, userID, h.Hub, h.Chat), nil
	})
	if err != nil {
		// A failed upgrade has already written its own response.
		if c.Writer.Written() {
			log.Printf("WARNING: websocket upgrade failed: %v", err)
			return
		}
		respondError(c, err)
		return
	}

	client.Run()
}
