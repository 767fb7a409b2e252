package identity

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var (
	ErrTokenExpired = errors.New("identity token has expired")
	ErrVerification = errors.New("identity token verification failed")
)

// Verifier checks a bearer credential against the external identity
// provider and returns the provider-side subject id.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier initializes the Firebase app from a service-account
// credentials file and returns a token verifier backed by it.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string) (Verifier, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	return &firebaseVerifier{client: client}, nil
}

// Verify validates signature and liveness of an ID token. Expiry is
// distinguished so callers can tell clients to silently refresh.
func (v *firebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenExpired(err) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return decoded.UID, nil
}
