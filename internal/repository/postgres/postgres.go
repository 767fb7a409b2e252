package postgres

import (
	"database/sql"

	"cleanspot-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.AreaRepository
	repository.OrganizationRepository
	repository.SubscriptionRepository
	repository.ApiKeyRepository
	repository.PointRepository
	repository.ActivityRepository
	repository.EventRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		AreaRepository:         NewAreaRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		SubscriptionRepository: NewSubscriptionRepository(db),
		ApiKeyRepository:       NewApiKeyRepository(db),
		PointRepository:        NewPointRepository(db),
		ActivityRepository:     NewActivityRepository(db),
		EventRepository:        NewEventRepository(db),
	}
}
