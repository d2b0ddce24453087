package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"brickhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return id, true
}

// respondServiceError maps sentinel service errors to HTTP statuses. Anything
// unexpected becomes a generic 500: storage error detail is logged server-side
// and never echoed to the caller.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotInCollection),
		errors.Is(err, service.ErrNotInWishlist),
		errors.Is(err, service.ErrSetNotFound),
		errors.Is(err, service.ErrFigNotInSet):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyInCollection):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
