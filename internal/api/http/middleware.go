package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"library-loan-backend/internal/domain"
	"library-loan-backend/internal/logger"
	"library-loan-backend/internal/security"
)

type contextKey string

const (
	contextKeyUserID    contextKey = "user_id"
	contextKeyUserRole  contextKey = "user_role"
	contextKeyRequestID contextKey = "request_id"
)

// RequestID tags every request with an id for log correlation, honoring an
// inbound X-Request-ID when a proxy already set one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), contextKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthMiddleware resolves the (user id, role) pair from the bearer token and
// puts it on the request context. Handlers downstream trust that pair.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := m.tokens.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyUserRole, claims.Role)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole additionally demands a specific role.
func (m *AuthMiddleware) RequireRole(role domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return m.Require(func(w http.ResponseWriter, r *http.Request) {
		if actorRole(r) != role {
			logger.Warn("Role check failed", "required", role, "actual", actorRole(r), "path", r.URL.Path)
			writeError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
		next(w, r)
	})
}

func actorID(r *http.Request) int32 {
	id, _ := r.Context().Value(contextKeyUserID).(int32)
	return id
}

func actorRole(r *http.Request) domain.Role {
	role, _ := r.Context().Value(contextKeyUserRole).(domain.Role)
	return role
}
