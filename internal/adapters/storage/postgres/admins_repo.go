package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-api/internal/domain/admins"
)

type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) Create(ctx context.Context, a admins.Admin) error {
	const q = `
		INSERT INTO admins (id, username, password, full_name, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (username) DO NOTHING`

	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.Username, a.PasswordHash, a.FullName, a.Email, a.CreatedAt,
	)
	return err
}

func (r *AdminRepo) GetByID(ctx context.Context, id string) (admins.Admin, error) {
	const q = `
		SELECT id, username, password, full_name, email, created_at
		FROM admins WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (admins.Admin, error) {
	const q = `
		SELECT id, username, password, full_name, email, created_at
		FROM admins WHERE lower(username) = lower($1)`

	return r.scanOne(r.db.QueryRowContext(ctx, q, username))
}

func (r *AdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	return mapAffected(res, admins.ErrNotFound)
}

func (r *AdminRepo) scanOne(row *sql.Row) (admins.Admin, error) {
	var a admins.Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.Email, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return admins.Admin{}, admins.ErrNotFound
	}
	return a, err
}

var _ admins.Repository = (*AdminRepo)(nil)
