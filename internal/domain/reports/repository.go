package reports

import (
	"context"
	"time"
)

// Repository son vistas derivadas de solo lectura sobre las mismas tablas;
// acá no se escribe nunca.
type Repository interface {
	Stats(ctx context.Context, now time.Time) (Stats, error)
	RecentPets(ctx context.Context, limit int) ([]RecentPet, error)
	// UsersByDay devuelve los últimos days días con altas, descendente.
	UsersByDay(ctx context.Context, days int) ([]DayCount, error)
	PetsBySpecies(ctx context.Context) ([]KeyCount, error)
	AppointmentsByStatus(ctx context.Context) ([]KeyCount, error)
}
