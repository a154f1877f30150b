package memory

import (
	"context"
	"sort"
	"time"

	"pet-care-api/internal/domain/appointments"
	"pet-care-api/internal/domain/reports"
)

// ReportsRepo calcula en Go lo que el repo postgres resuelve con agregados
// SQL; mismos resultados, mismo orden.
type ReportsRepo struct {
	users *UserRepo
	pets  *PetRepo
	appts *AppointmentRepo
}

func NewReportsRepo(usersRepo *UserRepo, petsRepo *PetRepo, apptsRepo *AppointmentRepo) *ReportsRepo {
	return &ReportsRepo{
		users: usersRepo,
		pets:  petsRepo,
		appts: apptsRepo,
	}
}

func (r *ReportsRepo) Stats(ctx context.Context, now time.Time) (reports.Stats, error) {
	r.pets.mu.RLock()
	totalPets := len(r.pets.byID)
	r.pets.mu.RUnlock()

	r.users.mu.RLock()
	totalUsers := len(r.users.byID)
	r.users.mu.RUnlock()

	pending := 0
	r.appts.mu.RLock()
	for _, a := range r.appts.byID {
		if a.Status == appointments.StatusScheduled && !a.Date.Before(now) {
			pending++
		}
	}
	r.appts.mu.RUnlock()

	return reports.Stats{
		TotalPets:           totalPets,
		TotalUsers:          totalUsers,
		PendingAppointments: pending,
	}, nil
}

func (r *ReportsRepo) RecentPets(ctx context.Context, limit int) ([]reports.RecentPet, error) {
	rows, err := r.pets.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]reports.RecentPet, 0, len(rows))
	for _, p := range rows {
		out = append(out, reports.RecentPet{
			PetID:          p.ID,
			PetName:        p.Name,
			Species:        p.Species,
			OwnerFirstName: p.OwnerFirstName,
			OwnerLastName:  p.OwnerLastName,
		})
	}
	return out, nil
}

func (r *ReportsRepo) UsersByDay(ctx context.Context, days int) ([]reports.DayCount, error) {
	counts := make(map[string]int)

	r.users.mu.RLock()
	for _, u := range r.users.byID {
		counts[u.CreatedAt.Format("2006-01-02")]++
	}
	r.users.mu.RUnlock()

	out := make([]reports.DayCount, 0, len(counts))
	for date, total := range counts {
		out = append(out, reports.DayCount{Date: date, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})

	if days > 0 && len(out) > days {
		out = out[:days]
	}
	return out, nil
}

func (r *ReportsRepo) PetsBySpecies(ctx context.Context) ([]reports.KeyCount, error) {
	counts := make(map[string]int)

	r.pets.mu.RLock()
	for _, p := range r.pets.byID {
		counts[p.Species]++
	}
	r.pets.mu.RUnlock()

	return toKeyCounts(counts), nil
}

func (r *ReportsRepo) AppointmentsByStatus(ctx context.Context) ([]reports.KeyCount, error) {
	counts := make(map[string]int)

	r.appts.mu.RLock()
	for _, a := range r.appts.byID {
		counts[string(a.Status)]++
	}
	r.appts.mu.RUnlock()

	return toKeyCounts(counts), nil
}

func toKeyCounts(counts map[string]int) []reports.KeyCount {
	out := make([]reports.KeyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, reports.KeyCount{Key: k, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}

var _ reports.Repository = (*ReportsRepo)(nil)
