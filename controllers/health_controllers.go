package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck -> liveness probe for the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Brew Bliss Cafe API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"status":    "healthy",
	})
}
