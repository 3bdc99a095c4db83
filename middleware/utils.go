package middleware

import (
	"github.com/aig-studio/artist-image-generator/common/helper"
	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/gin-gonic/gin"
)

func abortWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": helper.MessageWithRequestId(message, c.GetString(logger.RequestIdKey)),
	})
	c.Abort()
	logger.Error(c.Request.Context(), message)
}
