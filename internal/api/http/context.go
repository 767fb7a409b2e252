package http

import (
	"context"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/service"
)

type contextKey int

const sessionContextKey contextKey = iota

// WithSession returns a context carrying the resolved session. The session
// lives only as long as the request; nothing is stashed in shared state, so
// concurrent in-flight requests cannot observe each other's subject.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext extracts the session the auth middleware resolved for
// this request.
func SessionFromContext(ctx context.Context) (*domain.Session, error) {
	session, ok := ctx.Value(sessionContextKey).(*domain.Session)
	if !ok || session == nil {
		return nil, service.ErrUnauthenticated
	}
	return session, nil
}
