package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pet-care-api/internal/domain/users"
)

// UserRepo es el repo in-memory para dev/tests. Mismo contrato que postgres,
// incluido ErrEmailTaken y ErrNotFound.
type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{byID: make(map[string]users.User)}
}

func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, u.Email) {
			return users.ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *UserRepo) SearchByEmailPrefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0)
	for _, u := range r.byID {
		if strings.HasPrefix(strings.ToLower(u.Email), strings.ToLower(prefix)) {
			out = append(out, u.Email)
		}
	}
	sort.Strings(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	u.PasswordHash = passwordHash
	r.byID[id] = u
	return nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, in users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[in.ID]
	if !ok {
		return users.ErrNotFound
	}

	u.FirstName = in.FirstName
	u.LastName = in.LastName
	u.Phone = in.Phone
	u.Address = in.Address
	u.City = in.City
	u.State = in.State
	u.PostalCode = in.PostalCode
	u.Country = in.Country

	r.byID[in.ID] = u
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

var _ users.Repository = (*UserRepo)(nil)
