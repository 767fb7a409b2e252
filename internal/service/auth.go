package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/identity"
	"cleanspot-backend/internal/logger"
	"cleanspot-backend/internal/repository"
	"cleanspot-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo repository.UserRepository
	keyRepo  repository.ApiKeyRepository
	verifier identity.Verifier
	limiter  security.RateLimiter
}

func NewAuthService(userRepo repository.UserRepository, keyRepo repository.ApiKeyRepository, verifier identity.Verifier, limiter security.RateLimiter) AuthService {
	return &authService{
		userRepo: userRepo,
		keyRepo:  keyRepo,
		verifier: verifier,
		limiter:  limiter,
	}
}

func (s *authService) Resolve(ctx context.Context, cred Credential, required domain.GlobalRole) (*domain.Session, error) {
	var (
		session *domain.Session
		err     error
	)

	switch {
	case cred.Token != "":
		session, err = s.resolveToken(ctx, cred.Token)
	case cred.ApiKey != "":
		session, err = s.resolveApiKey(ctx, cred.ApiKey)
	default:
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	if !session.GlobalRole.Satisfies(required) {
		return nil, fmt.Errorf("%w: role %q does not satisfy %q", ErrForbidden, session.GlobalRole, required)
	}
	return session, nil
}

func (s *authService) resolveToken(ctx context.Context, token string) (*domain.Session, error) {
	externalID, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, identity.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	session, err := s.userRepo.GetAccountByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no account for subject", ErrUnauthenticated)
		}
		return nil, err
	}
	return session, nil
}

// resolveApiKey looks the key up by its public id, compares the secret
// against the stored bcrypt hash and enforces the hourly call ceiling.
func (s *authService) resolveApiKey(ctx context.Context, apiKey string) (*domain.Session, error) {
	keyID, secret, found := strings.Cut(apiKey, ".")
	if !found {
		return nil, fmt.Errorf("%w: malformed api key", ErrUnauthenticated)
	}

	key, err := s.keyRepo.GetByKeyID(ctx, keyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: unknown api key", ErrUnauthenticated)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(key.SecretHash), []byte(secret)); err != nil {
		return nil, fmt.Errorf("%w: api key secret mismatch", ErrUnauthenticated)
	}

	allowed, err := s.limiter.Allow(ctx, key.KeyID, key.LimitPerHour)
	if err != nil {
		// Counter store outage fails open; the key itself already verified.
		logger.Warn("rate limit check unavailable, allowing call", "key_id", key.KeyID, "error", err)
	} else if !allowed {
		return nil, fmt.Errorf("%w: api key rate limit of %d/hour exceeded", ErrForbidden, key.LimitPerHour)
	}

	session, err := s.userRepo.GetAccountByID(ctx, key.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: api key owner missing", ErrUnauthenticated)
		}
		return nil, err
	}
	return session, nil
}

func (s *authService) MintApiKey(ctx context.Context, userID int64, limitPerHour int32) (*domain.ApiKey, string, error) {
	keyID := uuid.NewString()
	secret := uuid.NewString()

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	key := &domain.ApiKey{
		KeyID:        keyID,
		SecretHash:   string(hash),
		UserID:       userID,
		LimitPerHour: limitPerHour,
	}
	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, "", err
	}

	return key, keyID + "." + secret, nil
}
