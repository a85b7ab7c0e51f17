package handler

import (
	"net/http"
	"strconv"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/storage"

	"github.com/gin-gonic/gin"
)

type startConversationRequest struct {
	TargetUserID string `json:"target_user_id" binding:"required"`
}

type applicationConversationRequest struct {
	ApplicationID  uint64 `json:"application_id" binding:"required"`
	InitialMessage string `json:"initial_message"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) ListConversations(c *gin.Context) {
	summaries, err := h.Chat.ListConversations(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) StartConversation(c *gin.Context) {
	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("target_user_id is required"))
		return
	}
	room, err := h.Chat.GetOrCreateDirectRoom(c.Request.Context(), currentUser(c), req.TargetUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) StartApplicationConversation(c *gin.Context) {
	var req applicationConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("application_id is required"))
		return
	}
	room, err := h.Chat.GetOrCreateApplicationRoomFor(c.Request.Context(), currentUser(c), req.ApplicationID, req.InitialMessage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.Chat.GetRoom(c.Request.Context(), c.Param("roomId"), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *Handler) ListMessages(c *gin.Context) {
	page, err := pageFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	messages, err := h.Chat.ListMessages(c.Request.Context(), c.Param("roomId"), currentUser(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("malformed request body"))
		return
	}
	msg, err := h.Chat.SendMessage(c.Request.Context(), c.Param("roomId"), currentUser(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func pageFromQuery(c *gin.Context) (storage.Page, error) {
	var page storage.Page
	for name, dst := range map[string]*int{"offset": &page.Offset, "limit": &page.Limit} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, apperr.Validation("%s must be an integer", name)
		}
		*dst = n
	}
	return page, nil
}
