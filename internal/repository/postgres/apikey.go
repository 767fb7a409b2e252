package postgres

import (
	"context"
	"database/sql"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type apiKeyRepository struct {
	db *sql.DB
}

func NewApiKeyRepository(db *sql.DB) repository.ApiKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *domain.ApiKey) error {
	query := `INSERT INTO api_keys (key_id, secret_hash, user_id, limit_per_hour, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	key.CreatedOn = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		key.KeyID, key.SecretHash, key.UserID, key.LimitPerHour, key.CreatedOn).Scan(&key.ID)
}

func (r *apiKeyRepository) GetByKeyID(ctx context.Context, keyID string) (*domain.ApiKey, error) {
	k := &domain.ApiKey{}
	query := `SELECT id, key_id, secret_hash, user_id, limit_per_hour, created_on
	          FROM api_keys WHERE key_id = $1`
	err := r.db.QueryRowContext(ctx, query, keyID).Scan(
		&k.ID, &k.KeyID, &k.SecretHash, &k.UserID, &k.LimitPerHour, &k.CreatedOn)
	if err != nil {
		return nil, err
	}
	return k, nil
}
