package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"pet-care-api/internal/domain/users"
)

const uniqueViolation = "23505"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	const q = `
		INSERT INTO users (id, email, password, first_name, last_name, phone,
		                   address, city, state, postal_code, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone,
		u.Address, u.City, u.State, u.PostalCode, u.Country, u.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	const q = `
		SELECT id, email, password, first_name, last_name, phone,
		       address, city, state, postal_code, country, created_at
		FROM users WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	const q = `
		SELECT id, email, password, first_name, last_name, phone,
		       address, city, state, postal_code, country, created_at
		FROM users WHERE lower(email) = lower($1)`

	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserRepo) SearchByEmailPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	const q = `
		SELECT email FROM users
		WHERE email ILIKE $1 || '%'
		ORDER BY email
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, q, prefix, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		out = append(out, email)
	}
	return out, rows.Err()
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	return mapAffected(res, users.ErrNotFound)
}

func (r *UserRepo) UpdateProfile(ctx context.Context, u users.User) error {
	const q = `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, address = $4,
		    city = $5, state = $6, postal_code = $7, country = $8
		WHERE id = $9`

	res, err := r.db.ExecContext(ctx, q,
		u.FirstName, u.LastName, u.Phone, u.Address,
		u.City, u.State, u.PostalCode, u.Country, u.ID,
	)
	if err != nil {
		return err
	}
	return mapAffected(res, users.ErrNotFound)
}

func (r *UserRepo) List(ctx context.Context) ([]users.User, error) {
	const q = `
		SELECT id, email, password, first_name, last_name, phone,
		       address, city, state, postal_code, country, created_at
		FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
			&u.Address, &u.City, &u.State, &u.PostalCode, &u.Country, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) scanOne(row *sql.Row) (users.User, error) {
	var u users.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.Address, &u.City, &u.State, &u.PostalCode, &u.Country, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	return u, err
}

// mapAffected traduce "0 filas afectadas" al sentinel del dominio.
func mapAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

var _ users.Repository = (*UserRepo)(nil)
