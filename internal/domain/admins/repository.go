package admins

import "context"

type Repository interface {
	// Create existe para seed/bootstrap; no hay alta de admins por API.
	Create(ctx context.Context, a Admin) error
	GetByID(ctx context.Context, id string) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
