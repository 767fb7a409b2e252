package service

import "errors"

// Failure taxonomy shared by every service. Expired is kept distinct from
// Unauthenticated so clients can silently refresh instead of re-prompting.
var (
	ErrUnauthenticated   = errors.New("missing or invalid credential")
	ErrExpiredCredential = errors.New("credential has expired")
	ErrForbidden         = errors.New("insufficient role or scope")
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrUpstream          = errors.New("upstream service failure")
)
