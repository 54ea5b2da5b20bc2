package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/stallworks/identity/internal/identity/domain"
)

type confirmationsRepo struct {
	db dbtx
}

func (r *confirmationsRepo) CreateConfirmation(ctx context.Context, c domain.Confirmation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO confirmations (id, account_id, token_hash, used, used_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.AccountID, c.TokenHash, c.Used, mapOptionalTime(c.UsedAt), time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *confirmationsRepo) GetConfirmationByTokenHash(ctx context.Context, hash string) (domain.Confirmation, error) {
	var (
		c      domain.Confirmation
		usedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, token_hash, used, used_at, created_at
		 FROM confirmations WHERE token_hash = ?`, hash,
	).Scan(&c.ID, &c.AccountID, &c.TokenHash, &c.Used, &usedAt, &c.CreatedAt)
	if err != nil {
		return domain.Confirmation{}, mapNotFound(err)
	}
	c.UsedAt = mapNullTimePtr(usedAt)
	return c, nil
}

func (r *confirmationsRepo) MarkConfirmationUsed(ctx context.Context, confirmationID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE confirmations SET used = 1, used_at = ? WHERE id = ?`,
		time.Now().UTC(), confirmationID,
	)
	return err
}

func (r *confirmationsRepo) DeleteUsedConfirmations(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM confirmations WHERE used = 1`)
	return err
}
