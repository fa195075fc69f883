package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tavola-dev/tavola/db"
)

func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := db.Store.Ping(ctx); err != nil {
		log.Printf("Store ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "degraded",
			"message":   "Store unavailable",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Tavola is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
