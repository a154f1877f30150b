package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-api/internal/domain/pets"
)

// PetRepo guarda el *UserRepo para armar la vista admin (join con dueño).
type PetRepo struct {
	mu    sync.RWMutex
	byID  map[string]pets.Pet
	users *UserRepo
}

func NewPetRepo(usersRepo *UserRepo) *PetRepo {
	return &PetRepo{
		byID:  make(map[string]pets.Pet),
		users: usersRepo,
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = p
	return nil
}

func (r *PetRepo) GetOwned(ctx context.Context, id, userID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetRepo) ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PetRepo) UpdateOwned(ctx context.Context, in pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[in.ID]
	if !ok || p.UserID != in.UserID {
		return pets.ErrNotFound
	}

	p.Name = in.Name
	p.Species = in.Species
	p.Breed = in.Breed
	p.Age = in.Age
	p.Weight = in.Weight
	p.Color = in.Color
	p.Notes = in.Notes

	r.byID[in.ID] = p
	return nil
}

func (r *PetRepo) DeleteOwned(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *PetRepo) ListAll(ctx context.Context) ([]pets.AdminRow, error) {
	r.mu.RLock()
	all := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	out := make([]pets.AdminRow, 0, len(all))
	for _, p := range all {
		row := pets.AdminRow{Pet: p}
		if u, err := r.users.GetByID(ctx, p.UserID); err == nil {
			row.OwnerFirstName = u.FirstName
			row.OwnerLastName = u.LastName
			row.OwnerEmail = u.Email
		}
		out = append(out, row)
	}
	return out, nil
}

// ownedBy lo usan los repos de appointments/vaccinations para resolver
// ownership bajo el mismo paquete, sin exponerlo en el contrato de dominio.
func (r *PetRepo) ownedBy(id, userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return ok && p.UserID == userID
}

func (r *PetRepo) name(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[id].Name
}

func (r *PetRepo) owner(id string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p.UserID, ok
}

var _ pets.Repository = (*PetRepo)(nil)
