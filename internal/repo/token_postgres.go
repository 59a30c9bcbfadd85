package repo

import (
	"context"
	"database/sql"
	"time"
)

// PostgresTokenRepository persists revoked token digests.
type PostgresTokenRepository struct {
	db *sql.DB
}

func NewPostgresTokenRepository(db *sql.DB) *PostgresTokenRepository {
	return &PostgresTokenRepository{db: db}
}

func (r *PostgresTokenRepository) Blacklist(digest string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO blacklisted_tokens (token_digest, expires_at)
		VALUES ($1, $2) ON CONFLICT (token_digest) DO NOTHING`, digest, expiresAt)
	return err
}

func (r *PostgresTokenRepository) IsBlacklisted(digest string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM blacklisted_tokens WHERE token_digest=$1)`, digest).
		Scan(&exists)
	return exists, err
}

func (r *PostgresTokenRepository) PurgeExpired(now time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM blacklisted_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}
