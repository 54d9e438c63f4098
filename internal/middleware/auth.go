package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/service"
	"clinic-app-server/internal/utils"
)

// RequireRole gates a route on the caller holding the given role. The
// bearer token is validated against the matching identity store on every
// request; a bad token and a wrong role produce the same unauthorized
// response so callers cannot probe which one failed.
func RequireRole(tokens *service.TokenService, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		if !tokens.ValidateRole(c.Request.Context(), tokenString, role) {
			utils.Unauthorized(c, "Invalid or expired token.")
			c.Abort()
			return
		}

		// Set caller identity in context for downstream handlers
		c.Set("subject", tokens.Subject(tokenString))
		c.Set("token", tokenString)

		c.Next()
	}
}

// Helper function to get the token subject from context
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	subject, exists := c.Get("subject")
	if !exists {
		return "", false
	}
	str, ok := subject.(string)
	return str, ok
}

// Helper function to get the raw bearer token from context
func GetTokenFromContext(c *gin.Context) (string, bool) {
	token, exists := c.Get("token")
	if !exists {
		return "", false
	}
	str, ok := token.(string)
	return str, ok
}
