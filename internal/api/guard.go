package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/profbkmurage/physiocare/internal/auth"
	"github.com/profbkmurage/physiocare/internal/identity"
)

const identityKey contextKey = "identity"

// RoleResolver augments a verified token with the stored role. It is the
// identity service in production and a stub in tests.
type RoleResolver interface {
	Resolve(ctx context.Context, id uuid.UUID, email string) identity.Resolved
}

// Authenticated verifies the bearer token and resolves the caller's role
// before the request proceeds. Requests without a valid token are turned
// away at the door.
func Authenticated(resolver RoleResolver, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}
			// reset tokens only complete the reset flow, never a session
			if claims.Purpose != "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}
			uid, err := uuid.Parse(claims.UserID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token")
				return
			}

			resolved := resolver.Resolve(r.Context(), uid, claims.Email)
			ctx := context.WithValue(r.Context(), identityKey, resolved)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly gates the admin console. A missing or stale role denies access;
// the guard never fails open.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		who, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthenticated", "missing bearer token")
			return
		}
		if !who.Role.Privileged() {
			writeError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFrom returns the resolved caller identity placed by Authenticated.
func IdentityFrom(ctx context.Context) (identity.Resolved, bool) {
	who, ok := ctx.Value(identityKey).(identity.Resolved)
	return who, ok
}
