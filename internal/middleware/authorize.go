package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"commentboard/api/internal/models"
)

// PermissionSource reads a user's capability set. Satisfied by
// service.PermissionService.
type PermissionSource interface {
	Get(ctx context.Context, userID string) (models.PermissionSet, error)
}

// RequirePermission rejects callers whose capability set lacks the given
// capability. It runs after Authenticate on every route that composes both;
// without an identity in context it answers 401, so composition order
// decides which error surfaces when both gates would fail.
func RequirePermission(capability models.Capability, perms PermissionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		set, err := perms.Get(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}

		if !set.Has(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "missing " + string(capability) + " permission"})
			return
		}

		c.Next()
	}
}
