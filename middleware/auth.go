package middleware

import (
	"net/http"
	"strings"

	"shopline/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the caller's
// userID in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Authorization token required", "")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, err := utils.ExtractIDFromToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid or expired token", "")
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
