package users

import (
	"context"
	"strings"
	"time"
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

func (s *Service) GetProfile(ctx context.Context, userID string) (User, error) {
	return s.repo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	FirstName  string
	LastName   string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
}

// UpdateProfile reemplaza los campos de perfil. Email y password tienen sus
// propios flujos (registro / migración de credenciales) y no se tocan acá.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) error {
	if strings.TrimSpace(userID) == "" {
		return ErrNotFound
	}

	return s.repo.UpdateProfile(ctx, User{
		ID:         userID,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		State:      strings.TrimSpace(in.State),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Country:    strings.TrimSpace(in.Country),
	})
}

func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}
