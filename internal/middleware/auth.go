package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Het6518/Fleetflow/internal/auth"
	"github.com/Het6518/Fleetflow/internal/domain"
)

// contextKey is a private type so context values set here cannot collide
// with keys from other packages.
type contextKey string

const (
	ctxKeyUserID contextKey = "user_id"
	ctxKeyRole   contextKey = "role"
)

// UserID returns the authenticated subject id set by Authenticate,
// or "" when the request was not authenticated.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyUserID).(string)
	return id
}

// Role returns the authenticated role set by Authenticate,
// or "" when the request was not authenticated.
func Role(ctx context.Context) domain.Role {
	role, _ := ctx.Value(ctxKeyRole).(domain.Role)
	return role
}

// Authenticate verifies the Bearer token on every request and stores the
// subject id and role in the request context. Requests without a valid
// token are rejected with 401 before reaching any handler.
func Authenticate(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeAuthError(w, http.StatusUnauthorized, "access denied: no token provided")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxKeyRole, domain.Role(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects with 403 unless the authenticated role is one of the
// allowed roles. Wire it after Authenticate on routes that mutate state;
// read routes are open to any authenticated role.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := allowed[Role(r.Context())]; !ok {
				writeAuthError(w, http.StatusForbidden, "access denied: insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError emits the same error envelope the handlers use, without
// importing the handler package (middleware must stay below it).
func writeAuthError(w http.ResponseWriter, status int, message string) {
	code := "unauthorized"
	if status == http.StatusForbidden {
		code = "forbidden"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
