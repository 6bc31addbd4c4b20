package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health handles GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "storefront-service"})
}
