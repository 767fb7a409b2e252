package http

import (
	"net/http"
	"strings"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/service"
)

// AuthMiddleware resolves the request credential through the role resolver
// and attaches the session to the request context.
type AuthMiddleware struct {
	auth service.AuthService
}

func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Require returns middleware gating its handlers on the given global role.
// Use domain.GlobalRoleCommon for endpoints that check area/organization
// membership themselves.
func (m *AuthMiddleware) Require(required domain.GlobalRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cred, err := extractCredential(r)
			if err != nil {
				respondError(w, err)
				return
			}

			session, err := m.auth.Resolve(r.Context(), cred, required)
			if err != nil {
				respondError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func extractCredential(r *http.Request) (service.Credential, error) {
	if key := r.Header.Get("X-Api-Key"); key != "" {
		return service.Credential{ApiKey: key}, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return service.Credential{}, service.ErrUnauthenticated
	}

	token := authHeader
	// Remove Bearer prefix if present
	if len(token) > 7 && strings.ToUpper(token[0:7]) == "BEARER " {
		token = token[7:]
	}
	return service.Credential{Token: token}, nil
}
