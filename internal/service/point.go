package service

import (
	"context"
	"database/sql"
	"errors"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type pointService struct {
	pointRepo repository.PointRepository
}

func NewPointService(pointRepo repository.PointRepository) PointService {
	return &pointService{pointRepo: pointRepo}
}

func (s *pointService) Report(ctx context.Context, session *domain.Session, point *domain.Point, gps *domain.Gps) error {
	point.ReporterID = session.User.ID
	return s.pointRepo.Create(ctx, point, gps)
}

func (s *pointService) UpdateStatus(ctx context.Context, session *domain.Session, pointID int64, status domain.PointStatus, note string) error {
	if _, err := s.pointRepo.GetByID(ctx, pointID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	activity := &domain.PointActivity{
		PointID: pointID,
		UserID:  session.User.ID,
		Status:  status,
		Note:    note,
	}
	return s.pointRepo.AppendActivity(ctx, activity)
}

func (s *pointService) GetPoint(ctx context.Context, id int64) (*domain.Point, error) {
	point, err := s.pointRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return point, nil
}
