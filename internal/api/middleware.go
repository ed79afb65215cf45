package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nhle/waterwise/internal/token"
)

// userIDKey is the gin context key the middleware stores the
// authenticated user ID under.
const userIDKey = "user_id"

// requireAuth rejects requests without a valid bearer token before any
// handler runs, and stores the token's user ID in the request context.
func requireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is required"})
			return
		}

		if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header must start with 'Bearer '"})
			return
		}

		userID, err := tokens.Verify(authHeader[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// currentUserID returns the authenticated user ID set by requireAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
