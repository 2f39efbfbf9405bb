// README: Generation-quota persistence (monthly allowance with lazy reset).
package quota

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles generation_quota persistence.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseOne atomically checks the monthly quota and deducts one generation. It
// resets the counter to DefaultAllowance when last_reset_month is behind the
// current month. Returns ErrQuotaExhausted when 0 rows are updated (quota
// exhausted or user absent).
func (s *Store) UseOne(ctx context.Context, email string) error {
	now := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE generation_quota SET
			generations_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE generations_remaining - 1 END,
			last_reset_month = $1
		WHERE user_email = $3 AND (last_reset_month < $1 OR generations_remaining > 0)
	`, now, DefaultAllowance, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureUser inserts a fresh generation_quota row for email with the default
// allowance. An existing row is silently kept (ON CONFLICT DO NOTHING).
func (s *Store) EnsureUser(ctx context.Context, email string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_quota (user_email, generations_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_email) DO NOTHING
	`, email, DefaultAllowance, time.Now().Format("2006-01"))
	return err
}
