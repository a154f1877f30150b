package pets

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

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Age         *int
	Weight      *float64
	Color       string
	DateOfBirth *time.Time
	Gender      string
	Notes       string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return Pet{}, ErrInvalidInput
	}

	p := Pet{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Species:     strings.TrimSpace(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Weight:      in.Weight,
		Color:       strings.TrimSpace(in.Color),
		DateOfBirth: in.DateOfBirth,
		Gender:      strings.TrimSpace(in.Gender),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetOwned(ctx context.Context, id, userID string) (Pet, error) {
	return s.repo.GetOwned(ctx, id, userID)
}

func (s *Service) ListByOwner(ctx context.Context, userID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, userID)
}

type UpdateInput struct {
	Name    string
	Species string
	Breed   string
	Age     *int
	Weight  *float64
	Color   string
	Notes   string
}

// Update reemplaza los campos mutables del perfil de la mascota.
// Nombre y especie siguen siendo obligatorios (columnas NOT NULL).
func (s *Service) Update(ctx context.Context, id, userID string, in UpdateInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Species) == "" {
		return ErrInvalidInput
	}

	return s.repo.UpdateOwned(ctx, Pet{
		ID:      id,
		UserID:  userID,
		Name:    strings.TrimSpace(in.Name),
		Species: strings.TrimSpace(in.Species),
		Breed:   strings.TrimSpace(in.Breed),
		Age:     in.Age,
		Weight:  in.Weight,
		Color:   strings.TrimSpace(in.Color),
		Notes:   strings.TrimSpace(in.Notes),
	})
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.DeleteOwned(ctx, id, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]AdminRow, error) {
	return s.repo.ListAll(ctx)
}
