package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-api/internal/domain/vaccinations"
)

type VaccinationRepo struct {
	mu    sync.RWMutex
	byID  map[string]vaccinations.Vaccination
	pets  *PetRepo
	users *UserRepo
}

func NewVaccinationRepo(petsRepo *PetRepo, usersRepo *UserRepo) *VaccinationRepo {
	return &VaccinationRepo{
		byID:  make(map[string]vaccinations.Vaccination),
		pets:  petsRepo,
		users: usersRepo,
	}
}

func (r *VaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.pets.ownedBy(v.PetID, ownerUserID) {
		return vaccinations.ErrPetNotOwned
	}
	r.byID[v.ID] = v
	return nil
}

func (r *VaccinationRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].VaccinationDate.After(out[j].VaccinationDate)
	})
	return out, nil
}

func (r *VaccinationRepo) UpdateOwned(ctx context.Context, in vaccinations.Vaccination, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[in.ID]
	if !ok || !r.pets.ownedBy(v.PetID, ownerUserID) {
		return vaccinations.ErrNotFound
	}

	v.VaccineName = in.VaccineName
	v.VaccinationDate = in.VaccinationDate
	v.NextDueDate = in.NextDueDate
	v.Veterinarian = in.Veterinarian
	v.ClinicName = in.ClinicName
	v.Status = in.Status

	r.byID[in.ID] = v
	return nil
}

func (r *VaccinationRepo) ListAll(ctx context.Context) ([]vaccinations.AdminRow, error) {
	r.mu.RLock()
	all := make([]vaccinations.Vaccination, 0, len(r.byID))
	for _, v := range r.byID {
		all = append(all, v)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].VaccinationDate.After(all[j].VaccinationDate)
	})

	out := make([]vaccinations.AdminRow, 0, len(all))
	for _, v := range all {
		row := vaccinations.AdminRow{
			Vaccination: v,
			PetName:     r.pets.name(v.PetID),
		}
		if ownerID, ok := r.pets.owner(v.PetID); ok {
			if u, err := r.users.GetByID(ctx, ownerID); err == nil {
				row.OwnerFirstName = u.FirstName
				row.OwnerLastName = u.LastName
			}
		}
		out = append(out, row)
	}
	return out, nil
}

var _ vaccinations.Repository = (*VaccinationRepo)(nil)
