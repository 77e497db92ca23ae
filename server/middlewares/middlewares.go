package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CronAuth guards the trigger surface with a shared bearer secret. Requests
// must carry "Authorization: Bearer <secret>". An empty configured secret
// rejects everything: an unset secret must fail closed, not open.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")

		if secret == "" || header == token || token != secret {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"details": "missing or invalid bearer token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
