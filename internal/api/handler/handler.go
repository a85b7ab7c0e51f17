// Package handler exposes the chat service over HTTP and the realtime gateway
// over WebSocket.
package handler

import (
	"context"
	"net/http"

	"jobboard/chat/internal/auth"
	"jobboard/chat/internal/chathub"
	"jobboard/chat/internal/config"
	"jobboard/chat/internal/models"
	"jobboard/chat/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ChatService is the conversation policy layer the handlers call into.
type ChatService interface {
	ListConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	GetOrCreateDirectRoom(ctx context.Context, requesterID, targetUserID string) (*models.Room, error)
	GetOrCreateApplicationRoomFor(ctx context.Context, requesterID string, applicationID uint64, initialMessage string) (*models.Room, error)
	GetRoom(ctx context.Context, roomID, userID string) (*models.Room, error)
	ListMessages(ctx context.Context, roomID, userID string, page storage.Page) ([]models.Message, error)
	SendMessage(ctx context.Context, roomID, userID, text string) (*models.Message, error)
}

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies shared by every route.
type Handler struct {
	Chat     ChatService
	Hub      *chathub.Gateway
	Tokens   *auth.AccessTokens
	Health   Pinger
	upgrader websocket.Upgrader
}

func NewHandler(chat ChatService, hub *chathub.Gateway, tokens *auth.AccessTokens, health Pinger, cfg *config.Config) *Handler {
	return &Handler{
		Chat:   chat,
		Hub:    hub,
		Tokens: tokens,
		Health: health,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || cfg.OriginAllowed(origin)
			},
		},
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/healthz", h.Healthz)
	r.GET("/ws", h.ServeWebSocket)

	authed := r.Group("/", h.RequireUser)
	authed.GET("/auth/ws-token", h.IssueConnectionToken)

	chat := authed.Group("/chat")
	chat.GET("/conversations", h.ListConversations)
	chat.POST("/conversations", h.StartConversation)
	chat.POST("/application-conversation", h.StartApplicationConversation)
	chat.GET("/rooms/:roomId", h.GetRoom)
	chat.GET("/messages/:roomId", h.ListMessages)
	chat.POST("/messages/:roomId", h.SendMessage)
}

// Healthz answers 200 while the database (and Redis, if used) respond.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Health.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
