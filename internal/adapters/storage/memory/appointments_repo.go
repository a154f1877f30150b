package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-api/internal/domain/appointments"
)

// AppointmentRepo replica el contrato del repo postgres: el alta verifica
// ownership de la mascota bajo el mismo lock que el insert.
type AppointmentRepo struct {
	mu    sync.RWMutex
	byID  map[string]appointments.Appointment
	pets  *PetRepo
	users *UserRepo
}

func NewAppointmentRepo(petsRepo *PetRepo, usersRepo *UserRepo) *AppointmentRepo {
	return &AppointmentRepo{
		byID:  make(map[string]appointments.Appointment),
		pets:  petsRepo,
		users: usersRepo,
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.pets.ownedBy(a.PetID, a.UserID) {
		return appointments.ErrPetNotOwned
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Row, 0)
	for _, a := range r.byID {
		if a.UserID == userID {
			out = append(out, appointments.Row{
				Appointment: a,
				PetName:     r.pets.name(a.PetID),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *AppointmentRepo) UpdateOwned(ctx context.Context, in appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[in.ID]
	if !ok || a.UserID != in.UserID {
		return appointments.ErrNotFound
	}

	a.Date = in.Date
	a.Type = in.Type
	a.Veterinarian = in.Veterinarian
	a.ClinicName = in.ClinicName
	a.Status = in.Status
	a.Notes = in.Notes

	r.byID[in.ID] = a
	return nil
}

func (r *AppointmentRepo) CancelOwned(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.UserID != userID {
		return appointments.ErrNotFound
	}

	// Cancelar dos veces no es error: queda Cancelled igual.
	a.Status = appointments.StatusCancelled
	r.byID[id] = a
	return nil
}

func (r *AppointmentRepo) ListAll(ctx context.Context) ([]appointments.AdminRow, error) {
	r.mu.RLock()
	all := make([]appointments.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, a)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})

	out := make([]appointments.AdminRow, 0, len(all))
	for _, a := range all {
		row := appointments.AdminRow{
			Appointment: a,
			PetName:     r.pets.name(a.PetID),
		}
		if u, err := r.users.GetByID(ctx, a.UserID); err == nil {
			row.OwnerFirstName = u.FirstName
			row.OwnerLastName = u.LastName
		}
		out = append(out, row)
	}
	return out, nil
}

var _ appointments.Repository = (*AppointmentRepo)(nil)
