package handlers

import (
	"trailmate/models"
	"trailmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped logger set by middleware, or the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

func userIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	return userID, userID != ""
}

func identityFromContext(c *gin.Context) (models.Identity, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return models.Identity{}, false
	}
	return models.Identity{
		UserID:      userID,
		DisplayName: c.GetString("displayName"),
		Email:       c.GetString("email"),
	}, true
}
