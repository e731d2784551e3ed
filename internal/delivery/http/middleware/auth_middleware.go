package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-admin/internal/domain/entity"
	"clinic-admin/pkg/jwt"
	"clinic-admin/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const IdentityKey contextKey = "identity"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		log:        log,
	}
}

// Identify attaches the caller's identity to the request context when a
// valid session token is presented. Requests without one pass through
// anonymously.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.log.Debug("Ignoring malformed authorization header")
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.log.Debugf("Ignoring invalid session token: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		identity := &entity.Identity{
			UserID:         claims.Subject,
			EmailAddresses: claims.EmailAddresses,
		}

		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
	})
}

// RequireIdentity rejects requests that Identify left anonymous.
func (m *AuthMiddleware) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentityFromContext(r.Context()); !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ContextWithIdentity returns a copy of ctx carrying identity
func ContextWithIdentity(ctx context.Context, identity *entity.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext extracts the caller identity from context
func GetIdentityFromContext(ctx context.Context) (*entity.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*entity.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
