package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type eventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Create(ctx context.Context, session *domain.Session, event *domain.Event) error {
	if !session.CanManageOrganization(event.OrganizationID) {
		return fmt.Errorf("%w: not a manager of organization %d", ErrForbidden, event.OrganizationID)
	}
	if !event.EndTime.After(event.StartTime) {
		return fmt.Errorf("%w: event must end after it starts", ErrConflict)
	}
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) Join(ctx context.Context, session *domain.Session, eventID int64) error {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.eventRepo.Join(ctx, eventID, session.User.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: already joined event %d", ErrConflict, eventID)
		}
		return err
	}
	return nil
}

func (s *eventService) Leave(ctx context.Context, session *domain.Session, eventID int64) error {
	if err := s.eventRepo.Leave(ctx, eventID, session.User.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
