package auth

import (
	"context"
	"time"
)

// TokenVerifier verifica un token y devuelve claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token con vigencia ttl para los claims dados.
type TokenIssuer interface {
	Issue(claims Claims, ttl time.Duration) (string, error)
}
