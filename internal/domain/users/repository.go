package users

import "context"

type Repository interface {
	// Create devuelve ErrEmailTaken si el email ya existe.
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// SearchByEmailPrefix devuelve hasta limit emails que empiezan con prefix.
	SearchByEmailPrefix(ctx context.Context, prefix string, limit int) ([]string, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// UpdateProfile actualiza solo los campos de perfil (nunca email/password).
	// 0 filas afectadas => ErrNotFound.
	UpdateProfile(ctx context.Context, u User) error
	List(ctx context.Context) ([]User, error)
}
