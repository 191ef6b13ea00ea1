package routes

import (
	"net/http"
	"time"

	"trailmate/handlers"
	"trailmate/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/chat")
	{
		api.Use(auth)
		api.POST("/sessions", hb.Chat.StartSession)
		api.GET("/sessions/:sessionID", hb.Chat.GetSession)
		api.POST("/sessions/:sessionID/messages", hb.Chat.SendMessage)
		api.DELETE("/sessions/:sessionID", hb.Chat.EndSession)
	}
}

// RegisterFavoritesRoutes registers the favorites blob endpoints.
func RegisterFavoritesRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/favorites")
	{
		api.Use(auth)
		api.GET("/:category", hb.Favorites.GetFavorites)
		api.PUT("/:category", hb.Favorites.PutFavorites)
	}
}

// RegisterProfileRoutes registers profile settings endpoints.
func RegisterProfileRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	api := r.Group("/api/profile")
	{
		api.Use(auth)
		api.PUT("/credential", hb.Profile.SetCredential)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Trailmate",
			"checks":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterChatRoutes(r, hb, auth)
	RegisterFavoritesRoutes(r, hb, auth)
	RegisterProfileRoutes(r, hb, auth)
}
