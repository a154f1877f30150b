package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-api/internal/platform/web"
	"pet-care-api/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Si viene Bearer token válido, setea los claims en el contexto.
// - Si no hay token o no verifica, el request sigue igual; RequireUser /
//   RequireAdmin deciden el corte ruta por ruta.
func AuthContext(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser corta con 401 si no hay claims y 403 si el rol no es user.
func RequireUser(next http.Handler) http.Handler {
	return requireRole(auth.RoleUser, next)
}

// RequireAdmin protege las rutas de back-office. La decisión es explícita
// por ruta: un token role=user nunca llega a un handler de admin.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(auth.RoleAdmin, next)
}

func requireRole(role auth.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			web.Fail(w, http.StatusUnauthorized, "Invalid or missing token")
			return
		}
		if claims.Role != role {
			web.Fail(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
