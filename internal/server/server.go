package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deusflow/newspulse/internal/app"
	"github.com/deusflow/newspulse/internal/logger"
	"github.com/deusflow/newspulse/internal/metrics"
)

// NewRouter builds the thin HTTP surface over the pipeline. Routing beyond
// these four endpoints belongs to the surrounding API layer.
func NewRouter(svc *app.Service) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		stats := metrics.Global.GetStats()
		status := http.StatusOK
		state := "ok"
		if healthy, ok := stats["is_healthy"].(bool); ok && !healthy {
			status = http.StatusServiceUnavailable
			state = "error"
		}
		c.JSON(status, gin.H{
			"status":       state,
			"last_refresh": stats["last_refresh_time"],
			"last_error":   stats["last_error"],
		})
	})

	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Global.GetStats())
	})

	api := router.Group("/api")
	api.GET("/news", newsHandler(svc))
	api.GET("/sources", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"sources": svc.Sources(),
			"health":  svc.Health(),
		})
	})

	return router
}

func newsHandler(svc *app.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := app.Query{
			Category: c.DefaultQuery("category", "all"),
			Lang:     c.DefaultQuery("lang", "auto"),
		}
		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be an integer"})
				return
			}
			q.Limit = limit
		}

		feed, err := svc.GetFeed(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, feed)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
