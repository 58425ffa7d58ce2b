package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"commentboard/api/internal/apperr"
	"commentboard/api/internal/ids"
	"commentboard/api/internal/models"
	"commentboard/api/internal/repository"
)

type CommentService struct {
	comments CommentStore
	users    UserStore
	log      zerolog.Logger
}

func NewCommentService(comments CommentStore, users UserStore, log zerolog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		users:    users,
		log:      log,
	}
}

// Create trims and persists a comment for the given author.
func (s *CommentService) Create(ctx context.Context, userID string, content string) (models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Comment{}, apperr.New(apperr.KindValidation, "content is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return models.Comment{}, apperr.New(apperr.KindUnauthenticated, "unknown user")
		}
		return models.Comment{}, err
	}

	comment := models.Comment{
		ID:         ids.New(),
		UserID:     user.ID,
		Content:    content,
		AuthorName: user.Name,
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// List returns all comments, newest first, each carrying its author name.
func (s *CommentService) List(ctx context.Context) ([]models.Comment, error) {
	return s.comments.ListNewestFirst(ctx)
}

// Delete removes a comment. Only the author may delete their own comment,
// even when the caller holds the delete capability.
func (s *CommentService) Delete(ctx context.Context, id string, callerID string) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperr.New(apperr.KindNotFound, "comment not found")
		}
		return err
	}

	if comment.UserID != callerID {
		return apperr.New(apperr.KindForbidden, "not the comment author")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperr.New(apperr.KindNotFound, "comment not found")
		}
		return err
	}
	return nil
}
