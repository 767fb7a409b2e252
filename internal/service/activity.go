package service

import (
	"context"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) ListActivity(ctx context.Context, scope repository.ActivityScope, kind domain.PointKind, page, limit int32) ([]domain.ActivityRecord, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.activityRepo.Query(ctx, scope, kind, nil, page, limit)
}

func (s *activityService) AreaDigest(ctx context.Context, areaID int64, since *time.Time, limit int32) (*domain.Digest, error) {
	records, err := s.activityRepo.Query(ctx, repository.ActivityScope{AreaID: areaID}, "", since, 1, limit)
	if err != nil {
		return nil, err
	}

	digest := &domain.Digest{}
	for _, rec := range records {
		digest.Add(rec)
	}
	return digest, nil
}
