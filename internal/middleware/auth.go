package middleware

import (
	"net/http"
	"strings"

	"portsanantonio/internal/auth"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token: " + err.Error()})
			c.Abort()
			return
		}

		// Attach staff identity to request context
		c.Set(auth.ContextUserID, claims.UserID)
		c.Set(auth.ContextUserEmail, claims.Email)
		c.Set(auth.ContextUserRole, claims.Role)
		c.Next()
	}
}

// CurrentEmail returns the authenticated staff email, or "" outside
// AuthMiddleware. Content saves record it as the editor.
func CurrentEmail(c *gin.Context) string {
	return c.GetString(auth.ContextUserEmail)
}
