package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"commentboard/api/internal/middleware"
	"commentboard/api/internal/models"
)

type commentResponse struct {
	ID        string                `json:"id"`
	Content   string                `json:"content"`
	User      commentAuthorResponse `json:"user"`
	CreatedAt time.Time             `json:"createdAt"`
}

type commentAuthorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func toCommentResponse(comment models.Comment) commentResponse {
	return commentResponse{
		ID:      comment.ID,
		Content: comment.Content,
		User: commentAuthorResponse{
			ID:   comment.UserID,
			Name: comment.AuthorName,
		},
		CreatedAt: comment.CreatedAt,
	}
}

func (h HandlerSet) ListComments(c *gin.Context) {
	comments, err := h.comments.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		resp = append(resp, toCommentResponse(comment))
	}
	c.JSON(http.StatusOK, resp)
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h HandlerSet) CreateComment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), userID, req.Content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h HandlerSet) DeleteComment(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.comments.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
