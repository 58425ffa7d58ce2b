package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"commentboard/api/internal/security"
)

const userIDKey = "user_id"

// Authenticate extracts the bearer access token, verifies it, and attaches
// the caller's identity to the request context. Absent or unverifiable
// tokens answer 401.
func Authenticate(tokens *security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := tokens.Verify(tokenStr, security.TokenKindAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated caller's identity, if Authenticate ran.
func UserID(c *gin.Context) (string, bool) {
	return c.GetString(userIDKey), c.GetString(userIDKey) != ""
}
