package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-scds/config"
	"go-scds/handlers"
	"go-scds/pipeline"
)

func SetupRouter(cfg config.Config, pipe *pipeline.Pipeline) *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware(cfg.ClientURL))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "scds-agent-api",
		})
	})

	// api routes
	api := r.Group("/api/scds")
	{
		api.POST("/analyze", func(c *gin.Context) {
			handlers.Analyze(c, pipe)
		})
		api.GET("/demo", handlers.Demo)
	}

	return r
}

// corsMiddleware admits the configured browser client origin.
func corsMiddleware(clientURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if clientURL != "" {
			c.Header("Access-Control-Allow-Origin", clientURL)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
