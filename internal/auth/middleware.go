package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which the resolved user id is
// stored by Middleware.
const ContextUserKey = "userID"

// Middleware validates the Authorization bearer token and stores the user id
// in the gin context. Requests without a valid token are aborted with 401.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header must be a bearer token"})
			return
		}
		uid, err := tokens.Validate(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(ContextUserKey, uid)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Middleware, or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
