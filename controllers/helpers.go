package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/common/logger"
	"github.com/horizonstores/backend/services"
)

// respondError maps a service failure to its HTTP status. Unknown errors are
// logged and masked as 500; typed failures carry their own code and message.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	logger.Error(c, "Unhandled service error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// callerID returns the explicit caller identity. There is no ambient session;
// every cart and order operation names its user.
func callerID(c *gin.Context) (string, bool) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
		return "", false
	}
	return userID, true
}

// RequireAdmin resolves the caller and rejects non-administrators. Used by
// the admin product, order and reporting routes.
func RequireAdmin(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			c.Abort()
			return
		}
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		if user == nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
