package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"

	"github.com/lib/pq"
)

type organizationService struct {
	orgRepo repository.OrganizationRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) Create(ctx context.Context, session *domain.Session, org *domain.Organization) error {
	return s.orgRepo.CreateWithOwner(ctx, org, session.User.ID)
}

func (s *organizationService) Get(ctx context.Context, id int64) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, session *domain.Session, org *domain.Organization) error {
	if !session.CanManageOrganization(org.ID) {
		return fmt.Errorf("%w: not a manager of organization %d", ErrForbidden, org.ID)
	}
	if err := s.orgRepo.Update(ctx, org); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *organizationService) Delete(ctx context.Context, session *domain.Session, id int64) error {
	if !session.CanManageOrganization(id) {
		return fmt.Errorf("%w: not a manager of organization %d", ErrForbidden, id)
	}
	if err := s.orgRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *organizationService) AddMember(ctx context.Context, session *domain.Session, orgID, userID int64, role domain.OrganizationRole) error {
	if !session.CanManageOrganization(orgID) {
		return fmt.Errorf("%w: not a manager of organization %d", ErrForbidden, orgID)
	}
	if err := s.orgRepo.AddMember(ctx, orgID, userID, role); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %d already a member", ErrConflict, userID)
		}
		return err
	}
	return nil
}

func (s *organizationService) RemoveMember(ctx context.Context, session *domain.Session, orgID, userID int64) error {
	if !session.CanManageOrganization(orgID) {
		return fmt.Errorf("%w: not a manager of organization %d", ErrForbidden, orgID)
	}
	if err := s.orgRepo.RemoveMember(ctx, orgID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// isUniqueViolation detects postgres duplicate-key failures (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
