package service

import (
	"context"
	"time"

	"commentboard/api/internal/models"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	SetResetToken(ctx context.Context, id string, token string, expiry time.Time) error
	UpdatePassword(ctx context.Context, id string, passwordHash []byte) error
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	FindByRefreshHash(ctx context.Context, refreshHash []byte) (models.Session, error)
	DeleteAllForUser(ctx context.Context, userID string) error
	DeleteByRefreshHash(ctx context.Context, refreshHash []byte) error
}

type PermissionStore interface {
	Get(ctx context.Context, userID string) (models.PermissionSet, error)
	Set(ctx context.Context, userID string, set models.PermissionSet) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListNewestFirst(ctx context.Context) ([]models.Comment, error)
	GetByID(ctx context.Context, id string) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}
