package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

func (h HandlerSet) UpdatePermissions(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId required"})
		return
	}

	var req updatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.perms.Update(c.Request.Context(), userID, req.Permissions); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "permissions updated"})
}
