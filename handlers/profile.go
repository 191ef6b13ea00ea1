package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"trailmate/models"
	"trailmate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CredentialWriter persists a sealed generation credential.
type CredentialWriter interface {
	UpdateCredential(ctx context.Context, userID, sealed string) error
}

type ProfileHandler struct {
	Profiles CredentialWriter
	Secret   string
}

func NewProfileHandler(profiles CredentialWriter, secret string) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Secret: secret}
}

// SetCredential handles PUT /api/profile/credential. The key is sealed before
// it is stored and is never echoed back.
func (h *ProfileHandler) SetCredential(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	var req models.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		utils.JSONError(c, http.StatusBadRequest, "API key is required", "")
		return
	}

	sealed, err := utils.SealCredential(h.Secret, key)
	if errors.Is(err, utils.ErrCredentialSecretMissing) {
		utils.JSONError(c, http.StatusServiceUnavailable, "Personal API keys are not enabled on this server", "")
		return
	}
	if err != nil {
		getLogger(c).Error("Failed to seal credential", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if err := h.Profiles.UpdateCredential(c.Request.Context(), userID, sealed); err != nil {
		getLogger(c).Error("Failed to store credential", zap.String("user_id", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Could not save your API key", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "API key saved. New chat sessions will use it."})
}
