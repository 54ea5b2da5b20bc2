package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/stallworks/identity/internal/identity/domain"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `id, email, username, first_name, last_name, date_of_birth,
	password_hash, role_id, email_confirmed, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, username, first_name, last_name, date_of_birth,
			password_hash, role_id, email_confirmed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Username, a.FirstName, a.LastName, mapOptionalTime(a.DateOfBirth),
		a.PasswordHash, mapStringNull(a.RoleID), a.EmailConfirmed, now, now,
	)
	return mapConstraint(err)
}

func (r *accountsRepo) UpdateRole(ctx context.Context, accountID, roleID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET role_id = ?, updated_at = ? WHERE id = ?`,
		roleID, time.Now().UTC(), accountID,
	)
	return err
}

func (r *accountsRepo) SetEmailConfirmed(ctx context.Context, accountID string, confirmed bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET email_confirmed = ?, updated_at = ? WHERE id = ?`,
		confirmed, time.Now().UTC(), accountID,
	)
	return err
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
	return err
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var (
		a      domain.Account
		dob    sql.NullTime
		roleID sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.Username, &a.FirstName, &a.LastName, &dob,
		&a.PasswordHash, &roleID, &a.EmailConfirmed, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.DateOfBirth = mapNullTimePtr(dob)
	a.RoleID = mapNullString(roleID)
	return a, nil
}
