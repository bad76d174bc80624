package handler

import (
	"github.com/decarvalhoe/umbra-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /health. The service holds no external
// dependencies, so liveness is the whole story.
func HealthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"service": "umbra-payment-service",
	})
}
