package reports

import (
	"context"
	"time"

	"pet-care-api/internal/domain/appointments"
	"pet-care-api/internal/domain/pets"
	"pet-care-api/internal/domain/users"
)

const (
	recentPetsLimit = 10
	overviewDays    = 7
)

// Service combina los agregados del Repository con el export masivo, que
// reusa los listados admin de cada dominio en vez de duplicar queries.
type Service struct {
	repo  Repository
	users users.Repository
	pets  pets.Repository
	appts appointments.Repository
	now   func() time.Time
}

func NewService(repo Repository, usersRepo users.Repository, petsRepo pets.Repository, apptsRepo appointments.Repository) *Service {
	return &Service{
		repo:  repo,
		users: usersRepo,
		pets:  petsRepo,
		appts: apptsRepo,
		now:   time.Now,
	}
}

type Dashboard struct {
	Stats      Stats
	RecentPets []RecentPet
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	st, err := s.repo.Stats(ctx, s.now())
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := s.repo.RecentPets(ctx, recentPetsLimit)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Stats: st, RecentPets: recent}, nil
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	byDay, err := s.repo.UsersByDay(ctx, overviewDays)
	if err != nil {
		return Overview{}, err
	}
	bySpecies, err := s.repo.PetsBySpecies(ctx)
	if err != nil {
		return Overview{}, err
	}
	byStatus, err := s.repo.AppointmentsByStatus(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		UsersByDay:           byDay,
		PetsBySpecies:        bySpecies,
		AppointmentsByStatus: byStatus,
	}, nil
}

type Export struct {
	Users        []users.User
	Pets         []pets.AdminRow
	Appointments []appointments.AdminRow
}

func (s *Service) Export(ctx context.Context) (Export, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return Export{}, err
	}
	ps, err := s.pets.ListAll(ctx)
	if err != nil {
		return Export{}, err
	}
	as, err := s.appts.ListAll(ctx)
	if err != nil {
		return Export{}, err
	}
	return Export{Users: us, Pets: ps, Appointments: as}, nil
}
