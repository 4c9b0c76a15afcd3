package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const authUserColumns = `id, email, password_hash, role, is_active, last_login_at, last_login_ip, created_at`

func scanAuthUser(row interface{ Scan(dest ...any) error }) (AuthUser, error) {
	var u AuthUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.LastLoginAt, &u.LastLoginIp, &u.CreatedAt)
	return u, err
}

func (q *Queries) GetAuthUser(ctx context.Context, id int64) (AuthUser, error) {
	return scanAuthUser(q.db.QueryRow(ctx, `SELECT `+authUserColumns+` FROM auth_users WHERE id = $1`, id))
}

func (q *Queries) GetAuthUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	return scanAuthUser(q.db.QueryRow(ctx, `SELECT `+authUserColumns+` FROM auth_users WHERE email = $1`, email))
}

func (q *Queries) ListAuthUsers(ctx context.Context) ([]AuthUser, error) {
	rows, err := q.db.Query(ctx, `SELECT `+authUserColumns+` FROM auth_users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []AuthUser
	for rows.Next() {
		u, err := scanAuthUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (q *Queries) CountAuthUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM auth_users`).Scan(&n)
	return n, err
}

// CountAuthAdmins counts active admin accounts; the last one is protected
// from demotion, deactivation and deletion.
func (q *Queries) CountAuthAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT count(*) FROM auth_users WHERE role = 'admin' AND is_active`).Scan(&n)
	return n, err
}

// ListActiveAuthAdminsForUpdate locks the active admin rows for the rest of
// the transaction so two concurrent demotions cannot both pass the
// last-admin check.
func (q *Queries) ListActiveAuthAdminsForUpdate(ctx context.Context) ([]int64, error) {
	rows, err := q.db.Query(ctx, `SELECT id FROM auth_users WHERE role = 'admin' AND is_active ORDER BY id FOR UPDATE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type CreateAuthUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

func (q *Queries) CreateAuthUser(ctx context.Context, arg CreateAuthUserParams) (AuthUser, error) {
	return scanAuthUser(q.db.QueryRow(ctx, `
INSERT INTO auth_users (email, password_hash, role, is_active)
VALUES ($1, $2, $3, $4)
RETURNING `+authUserColumns,
		arg.Email, arg.PasswordHash, arg.Role, arg.IsActive))
}

type UpdateAuthUserRoleParams struct {
	ID   int64
	Role string
}

func (q *Queries) UpdateAuthUserRole(ctx context.Context, arg UpdateAuthUserRoleParams) error {
	_, err := q.db.Exec(ctx, `UPDATE auth_users SET role = $2 WHERE id = $1`, arg.ID, arg.Role)
	return err
}

type SetAuthUserActiveParams struct {
	ID       int64
	IsActive bool
}

func (q *Queries) SetAuthUserActive(ctx context.Context, arg SetAuthUserActiveParams) error {
	_, err := q.db.Exec(ctx, `UPDATE auth_users SET is_active = $2 WHERE id = $1`, arg.ID, arg.IsActive)
	return err
}

type UpdateAuthUserPasswordHashParams struct {
	ID           int64
	PasswordHash string
}

func (q *Queries) UpdateAuthUserPasswordHash(ctx context.Context, arg UpdateAuthUserPasswordHashParams) error {
	_, err := q.db.Exec(ctx, `UPDATE auth_users SET password_hash = $2 WHERE id = $1`, arg.ID, arg.PasswordHash)
	return err
}

type UpdateAuthUserLoginMetaParams struct {
	ID          int64
	LastLoginAt pgtype.Timestamptz
	LastLoginIp string
}

func (q *Queries) UpdateAuthUserLoginMeta(ctx context.Context, arg UpdateAuthUserLoginMetaParams) error {
	_, err := q.db.Exec(ctx, `UPDATE auth_users SET last_login_at = $2, last_login_ip = $3 WHERE id = $1`,
		arg.ID, arg.LastLoginAt, arg.LastLoginIp)
	return err
}

func (q *Queries) DeleteAuthUser(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, `DELETE FROM auth_users WHERE id = $1`, id)
	return err
}
