package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pet-care-api/internal/domain/admins"
	"pet-care-api/internal/domain/users"
	authport "pet-care-api/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const minPrefixLen = 3

type Service struct {
	users  users.Repository
	admins admins.Repository
	tokens authport.TokenIssuer

	tokenTTL   time.Duration
	bcryptCost int
	now        func() time.Time
}

type Options struct {
	Users  users.Repository
	Admins admins.Repository
	Tokens authport.TokenIssuer

	TokenTTL   time.Duration // default 24h
	BcryptCost int           // default bcrypt.DefaultCost
}

func NewService(opts Options) *Service {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cost := opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Service{
		users:      opts.Users,
		admins:     opts.Admins,
		tokens:     opts.Tokens,
		tokenTTL:   ttl,
		bcryptCost: cost,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type UserSession struct {
	Token string
	User  users.User
}

type AdminSession struct {
	Token string
	Admin admins.Admin
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (UserSession, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return UserSession{}, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return UserSession{}, err
	}

	u := users.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now(),
	}

	// users.ErrEmailTaken sube tal cual; el handler lo mapea a 400.
	if err := s.users.Create(ctx, u); err != nil {
		return UserSession{}, err
	}

	token, err := s.tokens.Issue(authport.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   authport.RoleUser,
	}, s.tokenTTL)
	if err != nil {
		return UserSession{}, err
	}

	return UserSession{Token: token, User: u}, nil
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (UserSession, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return UserSession{}, ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return UserSession{}, ErrInvalidCredentials
		}
		return UserSession{}, err
	}

	hash, ok := s.verifyPassword(ctx, u.PasswordHash, password, func(newHash string) error {
		return s.users.UpdatePassword(ctx, u.ID, newHash)
	})
	if !ok {
		return UserSession{}, ErrInvalidCredentials
	}
	u.PasswordHash = hash

	token, err := s.tokens.Issue(authport.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   authport.RoleUser,
	}, s.tokenTTL)
	if err != nil {
		return UserSession{}, err
	}

	return UserSession{Token: token, User: u}, nil
}

func (s *Service) LoginAdmin(ctx context.Context, username, password string) (AdminSession, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return AdminSession{}, ErrInvalidInput
	}

	a, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, admins.ErrNotFound) {
			return AdminSession{}, ErrInvalidCredentials
		}
		return AdminSession{}, err
	}

	hash, ok := s.verifyPassword(ctx, a.PasswordHash, password, func(newHash string) error {
		return s.admins.UpdatePassword(ctx, a.ID, newHash)
	})
	if !ok {
		return AdminSession{}, ErrInvalidCredentials
	}
	a.PasswordHash = hash

	token, err := s.tokens.Issue(authport.Claims{
		AdminID:  a.ID,
		Username: a.Username,
		Role:     authport.RoleAdmin,
	}, s.tokenTTL)
	if err != nil {
		return AdminSession{}, err
	}

	return AdminSession{Token: token, Admin: a}, nil
}

// verifyPassword compara contra el hash guardado y, si eso falla pero lo
// guardado es exactamente el plaintext (datos seed sin migrar), lo acepta una
// única vez: re-hashea y persiste antes de dar el password por válido. Si la
// persistencia falla, el login falla; nunca se emite token sobre un plaintext
// que siga en la base.
func (s *Service) verifyPassword(ctx context.Context, stored, password string, persist func(newHash string) error) (string, bool) {
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil {
		return stored, true
	}

	if stored != password {
		return stored, false
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return stored, false
	}
	if err := persist(string(newHash)); err != nil {
		return stored, false
	}
	return string(newHash), true
}

type Availability struct {
	Available   bool
	Suggestions []string // emails ya tomados que matchean el prefijo
}

// CheckEmailAvailability es una sonda de disponibilidad por prefijo, no un
// generador de alternativas: cada match se devuelve como "tomado".
func (s *Service) CheckEmailAvailability(ctx context.Context, prefix string) (Availability, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < minPrefixLen {
		return Availability{}, ErrInvalidInput
	}

	matches, err := s.users.SearchByEmailPrefix(ctx, prefix, 10)
	if err != nil {
		return Availability{}, err
	}

	return Availability{
		Available:   len(matches) == 0,
		Suggestions: matches,
	}, nil
}
