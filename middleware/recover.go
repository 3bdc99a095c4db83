package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aig-studio/artist-image-generator/common/logger"
	"github.com/gin-gonic/gin"
)

func PanicRecover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.SysError(fmt.Sprintf("panic detected: %v", err))
				logger.SysError(fmt.Sprintf("stacktrace from panic: %s", string(debug.Stack())))
				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": fmt.Sprintf("Panic detected, error: %v", err),
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
