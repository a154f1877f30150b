package memory

import (
	"context"
	"strings"
	"sync"

	"pet-care-api/internal/domain/admins"
)

type AdminRepo struct {
	mu   sync.RWMutex
	byID map[string]admins.Admin
}

func NewAdminRepo() *AdminRepo {
	return &AdminRepo{byID: make(map[string]admins.Admin)}
}

func (r *AdminRepo) Create(ctx context.Context, a admins.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[a.ID] = a
	return nil
}

func (r *AdminRepo) GetByID(ctx context.Context, id string) (admins.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return admins.Admin{}, admins.ErrNotFound
	}
	return a, nil
}

func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (admins.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if strings.EqualFold(a.Username, username) {
			return a, nil
		}
	}
	return admins.Admin{}, admins.ErrNotFound
}

func (r *AdminRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return admins.ErrNotFound
	}
	a.PasswordHash = passwordHash
	r.byID[id] = a
	return nil
}

var _ admins.Repository = (*AdminRepo)(nil)
