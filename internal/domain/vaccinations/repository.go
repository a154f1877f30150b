package vaccinations

import "context"

type Repository interface {
	// Create inserta solo si la mascota referenciada pertenece a ownerUserID,
	// en una sola operación. Devuelve ErrPetNotOwned en caso contrario.
	Create(ctx context.Context, v Vaccination, ownerUserID string) error
	// ListByPet ordena por fecha de vacunación, más recientes primero.
	// El ownership del pet se verifica antes, en el handler.
	ListByPet(ctx context.Context, petID string) ([]Vaccination, error)
	// UpdateOwned limita por ownership vía la mascota referenciada.
	// 0 filas afectadas => ErrNotFound.
	UpdateOwned(ctx context.Context, v Vaccination, ownerUserID string) error
	ListAll(ctx context.Context) ([]AdminRow, error)
}
