package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pet-care-api/internal/adapters/auth/jwtauth"
	"pet-care-api/internal/domain/admins"
	"pet-care-api/internal/domain/users"
)

// userRepoStub implementa users.Repository sobre un map, contando las
// escrituras de password para poder verificar la migración de legacy.
type userRepoStub struct {
	byEmail     map[string]users.User
	updateCalls int
	failUpdate  bool
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{byEmail: map[string]users.User{}}
}

func (r *userRepoStub) Create(_ context.Context, u users.User) error {
	if _, ok := r.byEmail[strings.ToLower(u.Email)]; ok {
		return users.ErrEmailTaken
	}
	r.byEmail[strings.ToLower(u.Email)] = u
	return nil
}

func (r *userRepoStub) GetByID(_ context.Context, id string) (users.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *userRepoStub) GetByEmail(_ context.Context, email string) (users.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepoStub) SearchByEmailPrefix(_ context.Context, prefix string, limit int) ([]string, error) {
	out := make([]string, 0)
	for email := range r.byEmail {
		if strings.HasPrefix(email, strings.ToLower(prefix)) && len(out) < limit {
			out = append(out, email)
		}
	}
	return out, nil
}

func (r *userRepoStub) UpdatePassword(_ context.Context, id, hash string) error {
	r.updateCalls++
	if r.failUpdate {
		return errors.New("storage write failed")
	}
	for email, u := range r.byEmail {
		if u.ID == id {
			u.PasswordHash = hash
			r.byEmail[email] = u
			return nil
		}
	}
	return users.ErrNotFound
}

func (r *userRepoStub) UpdateProfile(_ context.Context, u users.User) error { return nil }

func (r *userRepoStub) List(_ context.Context) ([]users.User, error) { return nil, nil }

type adminRepoStub struct {
	byUsername  map[string]admins.Admin
	updateCalls int
}

func newAdminRepoStub() *adminRepoStub {
	return &adminRepoStub{byUsername: map[string]admins.Admin{}}
}

func (r *adminRepoStub) Create(_ context.Context, a admins.Admin) error {
	r.byUsername[a.Username] = a
	return nil
}

func (r *adminRepoStub) GetByID(_ context.Context, id string) (admins.Admin, error) {
	for _, a := range r.byUsername {
		if a.ID == id {
			return a, nil
		}
	}
	return admins.Admin{}, admins.ErrNotFound
}

func (r *adminRepoStub) GetByUsername(_ context.Context, username string) (admins.Admin, error) {
	a, ok := r.byUsername[username]
	if !ok {
		return admins.Admin{}, admins.ErrNotFound
	}
	return a, nil
}

func (r *adminRepoStub) UpdatePassword(_ context.Context, id, hash string) error {
	r.updateCalls++
	for username, a := range r.byUsername {
		if a.ID == id {
			a.PasswordHash = hash
			r.byUsername[username] = a
			return nil
		}
	}
	return admins.ErrNotFound
}

func newTestService(t *testing.T, usersRepo users.Repository, adminsRepo admins.Repository) *Service {
	t.Helper()

	tokens, err := jwtauth.New("test-secret")
	if err != nil {
		t.Fatalf("jwtauth.New: %v", err)
	}
	return NewService(Options{
		Users:      usersRepo,
		Admins:     adminsRepo,
		Tokens:     tokens,
		BcryptCost: bcrypt.MinCost,
	})
}

func TestRegister(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(t, repo, newAdminRepoStub())
	ctx := context.Background()

	sess, err := svc.Register(ctx, RegisterInput{
		Email:     "ana@example.com",
		Password:  "secret123",
		FirstName: "Ana",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected a token on register")
	}
	if sess.User.ID == "" {
		t.Error("expected a generated user id")
	}
	if sess.User.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}

	// 2. mismo email de nuevo
	_, err = svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "other"})
	if !errors.Is(err, users.ErrEmailTaken) {
		t.Errorf("duplicate register: got %v, want ErrEmailTaken", err)
	}

	// 3. input incompleto
	_, err = svc.Register(ctx, RegisterInput{Email: "", Password: "x"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty email: got %v, want ErrInvalidInput", err)
	}
}

func TestLoginUser(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(t, repo, newAdminRepoStub())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	sess, err := svc.LoginUser(ctx, "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected a token on login")
	}

	if _, err := svc.LoginUser(ctx, "ana@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.LoginUser(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUserMigratesLegacyPlaintext(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(t, repo, newAdminRepoStub())
	ctx := context.Background()

	// Dato seed heredado: password guardado tal cual, sin hashear.
	legacy := users.User{
		ID:           "legacy-1",
		Email:        "legacy@example.com",
		PasswordHash: "oldpassword",
		CreatedAt:    time.Now(),
	}
	if err := repo.Create(ctx, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 1. primer login: acepta y migra
	if _, err := svc.LoginUser(ctx, "legacy@example.com", "oldpassword"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	if repo.updateCalls != 1 {
		t.Fatalf("updateCalls = %d, want 1", repo.updateCalls)
	}

	stored, err := repo.GetByEmail(ctx, "legacy@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if stored.PasswordHash == "oldpassword" {
		t.Fatal("plaintext still stored after migration")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("oldpassword")) != nil {
		t.Fatal("stored hash does not match the original password")
	}

	// 2. segundo login: ya migrado, no vuelve a escribir
	if _, err := svc.LoginUser(ctx, "legacy@example.com", "oldpassword"); err != nil {
		t.Fatalf("second login: %v", err)
	}
	if repo.updateCalls != 1 {
		t.Errorf("updateCalls = %d after second login, want 1", repo.updateCalls)
	}
}

func TestLoginUserLegacyPersistFailure(t *testing.T) {
	repo := newUserRepoStub()
	repo.failUpdate = true
	svc := newTestService(t, repo, newAdminRepoStub())
	ctx := context.Background()

	legacy := users.User{ID: "legacy-2", Email: "stuck@example.com", PasswordHash: "oldpassword"}
	if err := repo.Create(ctx, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Si no se puede persistir el hash nuevo, no se emite token.
	if _, err := svc.LoginUser(ctx, "stuck@example.com", "oldpassword"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials when migration cannot persist", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	adminsRepo := newAdminRepoStub()
	svc := newTestService(t, newUserRepoStub(), adminsRepo)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	seed := admins.Admin{ID: "adm-1", Username: "root", PasswordHash: string(hash), FullName: "Root Admin"}
	if err := adminsRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sess, err := svc.LoginAdmin(ctx, "root", "adminpass")
	if err != nil {
		t.Fatalf("LoginAdmin: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected a token on admin login")
	}

	if _, err := svc.LoginAdmin(ctx, "root", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.LoginAdmin(ctx, "ghost", "adminpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown admin: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginAdminMigratesLegacyPlaintext(t *testing.T) {
	adminsRepo := newAdminRepoStub()
	svc := newTestService(t, newUserRepoStub(), adminsRepo)
	ctx := context.Background()

	seed := admins.Admin{ID: "adm-legacy", Username: "oldtimer", PasswordHash: "plainadmin"}
	if err := adminsRepo.Create(ctx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.LoginAdmin(ctx, "oldtimer", "plainadmin"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	if adminsRepo.updateCalls != 1 {
		t.Fatalf("updateCalls = %d, want 1", adminsRepo.updateCalls)
	}

	stored, err := adminsRepo.GetByUsername(ctx, "oldtimer")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("plainadmin")) != nil {
		t.Fatal("admin hash not migrated")
	}
}

func TestCheckEmailAvailability(t *testing.T) {
	repo := newUserRepoStub()
	svc := newTestService(t, repo, newAdminRepoStub())
	ctx := context.Background()

	for _, email := range []string{"ana@example.com", "anabel@example.com"} {
		if err := repo.Create(ctx, users.User{ID: email, Email: email, PasswordHash: "x"}); err != nil {
			t.Fatalf("seed %s: %v", email, err)
		}
	}

	if _, err := svc.CheckEmailAvailability(ctx, "an"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("short prefix: got %v, want ErrInvalidInput", err)
	}

	got, err := svc.CheckEmailAvailability(ctx, "ana")
	if err != nil {
		t.Fatalf("CheckEmailAvailability: %v", err)
	}
	if got.Available {
		t.Error("prefix with matches reported as available")
	}
	if len(got.Suggestions) != 2 {
		t.Errorf("suggestions = %d, want 2", len(got.Suggestions))
	}

	got, err = svc.CheckEmailAvailability(ctx, "zzz")
	if err != nil {
		t.Fatalf("CheckEmailAvailability: %v", err)
	}
	if !got.Available || len(got.Suggestions) != 0 {
		t.Errorf("free prefix: got %+v, want available with no suggestions", got)
	}
}
