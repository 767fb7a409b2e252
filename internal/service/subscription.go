package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
	"cleanspot-backend/internal/security"
)

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	areaRepo repository.AreaRepository
	tokens   security.UnsubscribeTokenManager
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, areaRepo repository.AreaRepository, tokens security.UnsubscribeTokenManager) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		areaRepo: areaRepo,
		tokens:   tokens,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, session *domain.Session, sub *domain.Subscription) error {
	if sub.SubjectKind == domain.SubjectOrganization && !session.CanManageOrganization(sub.SubjectID) {
		return fmt.Errorf("%w: not a manager of organization %d", ErrForbidden, sub.SubjectID)
	}
	if sub.SubjectKind == domain.SubjectUser && sub.SubjectID != session.User.ID {
		return fmt.Errorf("%w: cannot subscribe another user", ErrForbidden)
	}

	if _, err := s.areaRepo.GetByID(ctx, sub.AreaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: area %d", ErrNotFound, sub.AreaID)
		}
		return err
	}

	if err := s.subRepo.Subscribe(ctx, sub); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: already subscribed to area %d", ErrConflict, sub.AreaID)
		}
		return err
	}
	return nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, session *domain.Session, kind domain.SubjectKind, subjectID, areaID int64) error {
	if kind == domain.SubjectOrganization && !session.CanManageOrganization(subjectID) {
		return fmt.Errorf("%w: not a manager of organization %d", ErrForbidden, subjectID)
	}
	if kind == domain.SubjectUser && subjectID != session.User.ID {
		return fmt.Errorf("%w: cannot unsubscribe another user", ErrForbidden)
	}
	return s.remove(ctx, kind, subjectID, areaID)
}

func (s *subscriptionService) UnsubscribeByToken(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return ErrExpiredCredential
		}
		return ErrUnauthenticated
	}
	return s.remove(ctx, domain.SubjectKind(claims.SubjectKind), claims.SubjectID, claims.AreaID)
}

func (s *subscriptionService) remove(ctx context.Context, kind domain.SubjectKind, subjectID, areaID int64) error {
	if err := s.subRepo.Unsubscribe(ctx, kind, subjectID, areaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: no subscription for area %d", ErrNotFound, areaID)
		}
		return err
	}
	return nil
}
