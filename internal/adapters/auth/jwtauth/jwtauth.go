package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pet-care-api/internal/ports/auth"
)

var (
	ErrSecretEmpty  = errors.New("jwt secret is empty")
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token expired")
)

const DefaultTTL = 24 * time.Hour

// Tokens implementa auth.TokenIssuer y auth.TokenVerifier con HMAC-SHA256.
// El secreto es el único estado; no hay sesiones del lado servidor.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func New(secret string) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretEmpty
	}
	return &Tokens{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

func (t *Tokens) Issue(claims auth.Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := t.now()
	mc := jwt.MapClaims{
		"role": string(claims.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	switch claims.Role {
	case auth.RoleAdmin:
		mc["admin_id"] = claims.AdminID
		mc["username"] = claims.Username
	default:
		mc["user_id"] = claims.UserID
		mc["email"] = claims.Email
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return tok.SignedString(t.secret)
}

func (t *Tokens) Verify(ctx context.Context, tokenString string) (auth.Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	tok, err := jwt.Parse(tokenString, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, ErrTokenExpired
		}
		return auth.Claims{}, ErrTokenInvalid
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	c := auth.Claims{
		UserID:   stringClaim(mc, "user_id"),
		AdminID:  stringClaim(mc, "admin_id"),
		Email:    stringClaim(mc, "email"),
		Username: stringClaim(mc, "username"),
		Role:     auth.Role(stringClaim(mc, "role")),
	}

	// Un token sin identidad coherente con su rol no sirve de nada río abajo.
	switch c.Role {
	case auth.RoleUser:
		if c.UserID == "" {
			return auth.Claims{}, ErrTokenInvalid
		}
	case auth.RoleAdmin:
		if c.AdminID == "" {
			return auth.Claims{}, ErrTokenInvalid
		}
	default:
		return auth.Claims{}, ErrTokenInvalid
	}

	return c, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return s
}
