package sqlite

import (
	"context"
	"time"

	"github.com/stallworks/identity/internal/identity/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, account_id, token_hash, device_info, expires_at, revoked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.AccountID, s.TokenHash, s.DeviceInfo, s.ExpiresAt.UTC(), s.Revoked, now, now,
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, token_hash, device_info, expires_at, revoked, created_at, updated_at
		 FROM sessions WHERE token_hash = ?`, hash,
	).Scan(&s.ID, &s.AccountID, &s.TokenHash, &s.DeviceInfo, &s.ExpiresAt, &s.Revoked, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	return s, nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), sessionID,
	)
	return err
}

func (r *sessionsRepo) RevokeAllAccountSessions(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked = 1, updated_at = ? WHERE account_id = ? AND revoked = 0`,
		time.Now().UTC(), accountID,
	)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().UTC(),
	)
	return err
}
