package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	// GetOwned devuelve ErrNotFound si la mascota no existe o no es de userID.
	GetOwned(ctx context.Context, id, userID string) (Pet, error)
	// ListByOwner ordena por fecha de alta, más recientes primero.
	ListByOwner(ctx context.Context, userID string) ([]Pet, error)
	// UpdateOwned actualiza los campos mutables filtrando por dueño.
	// 0 filas afectadas => ErrNotFound.
	UpdateOwned(ctx context.Context, p Pet) error
	// DeleteOwned es borrado duro. 0 filas => ErrNotFound.
	DeleteOwned(ctx context.Context, id, userID string) error
	// ListAll es la variante admin: sin filtro de dueño, con datos del dueño.
	ListAll(ctx context.Context) ([]AdminRow, error)
}
