package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	giveawayservice "giveaway-bot/internal/features/giveaway/service"
)

// NewRouter builds the read-only inspection API served alongside the bot.
func NewRouter(service giveawayservice.GiveawayService, origin, adminToken string, debug bool) *gin.Engine {
	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{origin}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	if adminToken != "" {
		api.Use(bearerAuth(adminToken))
	}

	handler := NewGiveawayHandler(service)
	handler.RegisterRoutes(api)

	return router
}

func bearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+token {
			c.AbortWithStatusJSON(401, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
