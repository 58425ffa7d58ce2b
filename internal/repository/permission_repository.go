package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"commentboard/api/internal/models"
)

// PermissionRepository persists one capability set per user. Capability
// labels are validated before they get here; the table stores one row per
// (user, capability) pair.
type PermissionRepository struct {
	pool *pgxpool.Pool
}

func NewPermissionRepository(pool *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{pool: pool}
}

// Get returns the user's capability set, empty when no grants exist.
func (r *PermissionRepository) Get(ctx context.Context, userID string) (models.PermissionSet, error) {
	const query = `SELECT capability FROM permissions WHERE user_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := models.PermissionSet{}
	for rows.Next() {
		var capability string
		if err := rows.Scan(&capability); err != nil {
			return nil, err
		}
		set[models.Capability(capability)] = struct{}{}
	}
	return set, rows.Err()
}

// Set replaces the user's full capability set in one transaction. The update
// is not additive: capabilities absent from set are revoked.
func (r *PermissionRepository) Set(ctx context.Context, userID string, set models.PermissionSet) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM permissions WHERE user_id = $1`, userID); err != nil {
		return err
	}

	const insert = `INSERT INTO permissions (user_id, capability) VALUES ($1, $2)`
	for capability := range set {
		if _, err := tx.Exec(ctx, insert, userID, string(capability)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
