package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/aig-studio/artist-image-generator/common/config"
	"github.com/gin-gonic/gin"
)

// AdminAuth requires "Authorization: Bearer <ADMIN_TOKEN>". An empty ADMIN_TOKEN leaves the routes open.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.AdminToken == "" {
			c.Next()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			abortWithMessage(c, http.StatusUnauthorized, "no access token provided")
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(config.AdminToken)) != 1 {
			abortWithMessage(c, http.StatusUnauthorized, "access token is invalid")
			return
		}
		c.Next()
	}
}
