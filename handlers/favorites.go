package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"trailmate/models"
	"trailmate/services/favorites"
	"trailmate/utils"

	"github.com/gin-gonic/gin"
)

// FavoritesStore keeps the per-category favorites blob.
type FavoritesStore interface {
	Get(ctx context.Context, userID string, category models.FavoriteCategory) (models.Favorites, error)
	Set(ctx context.Context, userID string, category models.FavoriteCategory, items []json.RawMessage) error
}

type FavoritesHandler struct {
	Store FavoritesStore
}

func NewFavoritesHandler(store FavoritesStore) *FavoritesHandler {
	return &FavoritesHandler{Store: store}
}

// GetFavorites handles GET /api/favorites/:category.
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	favs, err := h.Store.Get(c.Request.Context(), userID, models.FavoriteCategory(c.Param("category")))
	if errors.Is(err, favorites.ErrUnknownCategory) {
		utils.JSONError(c, http.StatusNotFound, "Unknown favorites category", "")
		return
	}
	c.JSON(http.StatusOK, favs)
}

// PutFavorites handles PUT /api/favorites/:category. The body is the full list.
func (h *FavoritesHandler) PutFavorites(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
		return
	}
	var items []json.RawMessage
	if err := c.ShouldBindJSON(&items); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "expected a JSON array")
		return
	}
	category := models.FavoriteCategory(c.Param("category"))
	if err := h.Store.Set(c.Request.Context(), userID, category, items); err != nil {
		if errors.Is(err, favorites.ErrUnknownCategory) {
			utils.JSONError(c, http.StatusNotFound, "Unknown favorites category", "")
			return
		}
		getLogger(c).Warn("Favorites not saved")
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Favorites saved"})
}
