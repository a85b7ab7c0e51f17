package handler

import (
	"net/http"
	"strings"

	"jobboard/chat/internal/apperr"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// RequireUser authenticates the bearer access token and stores the user id in the context.
func (h *Handler) RequireUser(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, apperr.Auth("authorization token missing"))
		return
	}
	userID, err := h.Tokens.Validate(token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Set(userIDKey, userID)
	c.Next()
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// IssueConnectionToken returns a single-use token for opening /ws.
func (h *Handler) IssueConnectionToken(c *gin.Context) {
	token, err := h.Hub.IssueConnectionToken(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
