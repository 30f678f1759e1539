package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware: the dashboard frontend is served from a different
	// origin during development.
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	api := r.Group("/api")
	{
		api.GET("/articles", handler.GetArticles)
		api.POST("/refresh", handler.Refresh)
		api.GET("/feeds", handler.GetFeeds)
		api.GET("/status", handler.GetStatus)
		api.GET("/health", handler.GetHealth)

		radar := api.Group("/tech-radar")
		{
			radar.GET("", handler.ListRadarItems)
			radar.POST("", handler.CreateRadarItem)
			radar.GET("/snapshots", handler.ListRadarSnapshots)
			radar.POST("/snapshots", handler.CreateRadarSnapshot)
			radar.PUT("/:id", handler.UpdateRadarItem)
			radar.DELETE("/:id", handler.DeleteRadarItem)
			radar.GET("/:id/history", handler.GetRadarItemHistory)
		}
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "AI Pulse",
			"description": "AI news aggregation and tech radar service",
			"endpoints": map[string]string{
				"articles":   "/api/articles",
				"refresh":    "/api/refresh (POST)",
				"feeds":      "/api/feeds",
				"status":     "/api/status",
				"health":     "/api/health",
				"tech_radar": "/api/tech-radar",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
