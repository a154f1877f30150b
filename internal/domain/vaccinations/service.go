package vaccinations

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AddInput struct {
	PetID           string
	VaccineName     string
	VaccinationDate time.Time
	NextDueDate     *time.Time
	Veterinarian    string
	ClinicName      string
	Status          string
}

func (s *Service) Add(ctx context.Context, ownerUserID string, in AddInput) (Vaccination, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Vaccination{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.PetID) == "" || strings.TrimSpace(in.VaccineName) == "" || in.VaccinationDate.IsZero() {
		return Vaccination{}, ErrInvalidInput
	}

	v := Vaccination{
		ID:              uuid.NewString(),
		PetID:           strings.TrimSpace(in.PetID),
		VaccineName:     strings.TrimSpace(in.VaccineName),
		VaccinationDate: in.VaccinationDate,
		NextDueDate:     in.NextDueDate,
		Veterinarian:    strings.TrimSpace(in.Veterinarian),
		ClinicName:      strings.TrimSpace(in.ClinicName),
		Status:          strings.TrimSpace(in.Status),
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, v, ownerUserID); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Vaccination, error) {
	return s.repo.ListByPet(ctx, petID)
}

type UpdateInput struct {
	VaccineName     string
	VaccinationDate time.Time
	NextDueDate     *time.Time
	Veterinarian    string
	ClinicName      string
	Status          string
}

func (s *Service) Update(ctx context.Context, id, ownerUserID string, in UpdateInput) error {
	if strings.TrimSpace(in.VaccineName) == "" || in.VaccinationDate.IsZero() {
		return ErrInvalidInput
	}

	return s.repo.UpdateOwned(ctx, Vaccination{
		ID:              id,
		VaccineName:     strings.TrimSpace(in.VaccineName),
		VaccinationDate: in.VaccinationDate,
		NextDueDate:     in.NextDueDate,
		Veterinarian:    strings.TrimSpace(in.Veterinarian),
		ClinicName:      strings.TrimSpace(in.ClinicName),
		Status:          strings.TrimSpace(in.Status),
	}, ownerUserID)
}

func (s *Service) ListAll(ctx context.Context) ([]AdminRow, error) {
	return s.repo.ListAll(ctx)
}
