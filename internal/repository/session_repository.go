package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commentboard/api/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session models.Session) error {
	const query = `
		INSERT INTO sessions (
			id, user_id, refresh_token_hash, created_at, expires_at
		) VALUES (
			$1, $2, $3, NOW(), $4
		)
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		session.ExpiresAt,
	)
	return err
}

// FindByRefreshHash returns the session holding this refresh-token hash.
// Expiry is not checked here; callers must compare ExpiresAt themselves.
func (r *SessionRepository) FindByRefreshHash(ctx context.Context, refreshHash []byte) (models.Session, error) {
	const query = `
		SELECT id, user_id, refresh_token_hash, created_at, expires_at
		FROM sessions
		WHERE refresh_token_hash = $1
	`
	row := r.pool.QueryRow(ctx, query, refreshHash)

	var session models.Session
	if err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.RefreshTokenHash,
		&session.CreatedAt,
		&session.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

// DeleteAllForUser revokes every session the user holds. Login calls this
// before creating the replacement session (single active session).
func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	const query = `DELETE FROM sessions WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// DeleteByRefreshHash removes the matching session. Deleting a session that
// does not exist is not an error; logout is idempotent.
func (r *SessionRepository) DeleteByRefreshHash(ctx context.Context, refreshHash []byte) error {
	const query = `DELETE FROM sessions WHERE refresh_token_hash = $1`
	_, err := r.pool.Exec(ctx, query, refreshHash)
	return err
}

// DeleteExpired removes sessions whose expiry has already passed. Refresh
// validity is checked lazily on use; this is storage hygiene only.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= NOW()`
	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
