package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const usernameKey = "username"

// JWTMiddleware validates the bearer token and stores the operator name.
func (a *Authenticator) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must use Bearer scheme"})
			return
		}

		claims, err := a.ParseToken(strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// UsernameFromContext returns the operator set by JWTMiddleware.
func UsernameFromContext(c *gin.Context) (string, bool) {
	username := c.GetString(usernameKey)
	return username, username != ""
}
