package handler

import (
	"log"
	"net/http"

	"jobboard/chat/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError maps err to its HTTP status and aborts the request.
// Unclassified errors are logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch apperr.Kind(err) {
	case apperr.ErrValidation:
		status, code = http.StatusBadRequest, "validation"
	case apperr.ErrAuth:
		status, code = http.StatusUnauthorized, "unauthorized"
	case apperr.ErrForbidden:
		status, code = http.StatusForbidden, "forbidden"
	case apperr.ErrNotFound:
		status, code = http.StatusNotFound, "not_found"
	case apperr.ErrConflict:
		status, code = http.StatusConflict, "conflict"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}
