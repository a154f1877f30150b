package appointments

import "context"

type Repository interface {
	// Create inserta solo si la mascota referenciada pertenece a a.UserID,
	// en una sola operación (sin ventana entre verificación e insert).
	// Devuelve ErrPetNotOwned en caso contrario.
	Create(ctx context.Context, a Appointment) error
	// ListByUser ordena por fecha de cita, más recientes primero.
	ListByUser(ctx context.Context, userID string) ([]Row, error)
	// UpdateOwned reemplaza los campos mutables filtrando por dueño.
	// 0 filas afectadas => ErrNotFound.
	UpdateOwned(ctx context.Context, a Appointment) error
	// CancelOwned pone status=Cancelled. Idempotente: cancelar dos veces
	// no es error. 0 filas matcheadas => ErrNotFound.
	CancelOwned(ctx context.Context, id, userID string) error
	ListAll(ctx context.Context) ([]AdminRow, error)
}
