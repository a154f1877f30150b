package appointments

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

type BookInput struct {
	PetID        string
	Date         time.Time
	Type         string
	Veterinarian string
	ClinicName   string
	Phone        string
	Notes        string
}

func (s *Service) Book(ctx context.Context, userID string, in BookInput) (Appointment, error) {
	if strings.TrimSpace(userID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.PetID) == "" || in.Date.IsZero() {
		return Appointment{}, ErrInvalidInput
	}

	a := Appointment{
		ID:           uuid.NewString(),
		UserID:       userID,
		PetID:        strings.TrimSpace(in.PetID),
		Date:         in.Date,
		Type:         strings.TrimSpace(in.Type),
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		ClinicName:   strings.TrimSpace(in.ClinicName),
		Phone:        strings.TrimSpace(in.Phone),
		Notes:        strings.TrimSpace(in.Notes),
		Status:       StatusScheduled,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Row, error) {
	return s.repo.ListByUser(ctx, userID)
}

type UpdateInput struct {
	Date         time.Time
	Type         string
	Veterinarian string
	ClinicName   string
	Status       Status
	Notes        string
}

// Update reemplaza los campos mutables, status incluido. No se validan
// transiciones de estado: el dueño puede reagendar una cita cancelada.
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) error {
	if in.Date.IsZero() {
		return ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = StatusScheduled
	}

	return s.repo.UpdateOwned(ctx, Appointment{
		ID:           id,
		UserID:       userID,
		Date:         in.Date,
		Type:         strings.TrimSpace(in.Type),
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		ClinicName:   strings.TrimSpace(in.ClinicName),
		Status:       status,
		Notes:        strings.TrimSpace(in.Notes),
	})
}

func (s *Service) Cancel(ctx context.Context, id, userID string) error {
	return s.repo.CancelOwned(ctx, id, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]AdminRow, error) {
	return s.repo.ListAll(ctx)
}
