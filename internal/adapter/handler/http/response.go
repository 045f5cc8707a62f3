package http

import (
	"github.com/gin-gonic/gin"

	"github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func newErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: message})
}

func newSuccessResponse(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, successResponse{Message: message, Data: data})
}

// getAuthPayload reads the token payload stored by AuthMiddleware.
func getAuthPayload(c *gin.Context, key string) (*domain.TokenPayload, bool) {
	value, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	payload, ok := value.(*domain.TokenPayload)
	if !ok || payload == nil {
		return nil, false
	}
	return payload, true
}
