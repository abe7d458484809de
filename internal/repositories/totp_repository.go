package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

func (r *TOTPRepository) SaveSecret(ctx context.Context, userID int, secret string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO totp_secrets(user_id, secret, enabled)
         VALUES($1, $2, FALSE)
         ON CONFLICT (user_id) DO UPDATE SET secret=$2, enabled=FALSE`,
		userID, secret)
	return err
}

func (r *TOTPRepository) GetSecret(ctx context.Context, userID int) (secret string, enabled bool, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT secret, enabled FROM totp_secrets WHERE user_id=$1`, userID).
		Scan(&secret, &enabled)
	return secret, enabled, err
}

func (r *TOTPRepository) Enable(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE totp_secrets SET enabled=TRUE WHERE user_id=$1`, userID)
	return err
}

func (r *TOTPRepository) Disable(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM totp_secrets WHERE user_id=$1`, userID)
	return err
}
