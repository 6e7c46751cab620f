package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/arkadyv/noteboard/internal/httperr"
)

type contextKey string

const claimsContextKey = contextKey("auth_claims")

// ErrNoIdentity is returned when a handler asks for the caller identity on a
// request that never passed the gate.
var ErrNoIdentity = errors.New("no identity in context")

// BearerToken extracts the token from the Authorization header, falling back
// to the `token` query parameter.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	return r.URL.Query().Get("token")
}

// Gate returns the authentication middleware. Requests to an allow-listed
// path (exact match) pass through untouched. Every other request must carry
// a verifiable token; its claims are injected into the request context for
// downstream handlers.
func Gate(secret []byte, public []string, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(public))
	for _, p := range public {
		allowed[p] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			tok := BearerToken(r)
			if tok == "" {
				httperr.Write(w, logger, httperr.Auth("Unauthenticated"))
				return
			}

			claims, err := VerifyToken(secret, tok)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					httperr.Write(w, logger, httperr.TokenExpired())
					return
				}
				logger.Debugw("token rejected", "path", r.URL.Path, "err", err)
				httperr.Write(w, logger, httperr.Auth("Unauthenticated"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified identity attached by the gate.
func ClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok || claims.UID == "" {
		return nil, ErrNoIdentity
	}
	return claims, nil
}

// ContextWithClaims injects an identity directly; used by tests.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}
