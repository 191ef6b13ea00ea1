package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"trailmate/models"
	"trailmate/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TokenVerifier resolves a bearer token to the calling user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*models.Identity, error)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  0,
	})
}

// UserAuth verifies the bearer token and stores userID, displayName and email
// in the context. When authCache is set, verified tokens are remembered by
// hash until they expire or AuthCacheTTL passes.
func UserAuth(verifier TokenVerifier, authCache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Insufficient authorization")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			abortUnauthorized(c, "Insufficient authorization")
			return
		}

		ctx := c.Request.Context()
		cacheKey := utils.AuthCachePrefix + utils.HashToken(tokenString)

		if authCache != nil {
			if raw, err := authCache.Get(ctx, cacheKey).Bytes(); err == nil {
				var id models.Identity
				if json.Unmarshal(raw, &id) == nil && id.UserID != "" {
					setIdentity(c, id)
					c.Next()
					return
				}
			} else if err != redis.Nil {
				zap.L().Warn("Auth cache unavailable, verifying token directly", zap.Error(err))
			}
		}

		id, err := verifier.Verify(ctx, tokenString)
		if err != nil || id == nil || id.UserID == "" {
			abortUnauthorized(c, "Authentication error")
			return
		}

		if authCache != nil {
			if raw, err := json.Marshal(id); err == nil {
				_ = authCache.Set(ctx, cacheKey, raw, utils.AuthCacheTTL).Err()
			}
		}

		setIdentity(c, *id)
		c.Next()
	}
}

func setIdentity(c *gin.Context, id models.Identity) {
	c.Set("userID", id.UserID)
	c.Set("displayName", id.DisplayName)
	c.Set("email", id.Email)
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			c.Set("logger", logger.With(zap.String("user_id", id.UserID)))
		}
	}
}

