package service

import (
	"context"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetAccountByExternalID(ctx context.Context, externalID string) (*domain.Session, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockUserRepo) GetAccountByID(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// MockApiKeyRepo
type MockApiKeyRepo struct {
	mock.Mock
}

func (m *MockApiKeyRepo) Create(ctx context.Context, key *domain.ApiKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockApiKeyRepo) GetByKeyID(ctx context.Context, keyID string) (*domain.ApiKey, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApiKey), args.Error(1)
}

// MockAreaRepo
type MockAreaRepo struct {
	mock.Mock
}

func (m *MockAreaRepo) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Area), args.Error(1)
}
func (m *MockAreaRepo) AncestorChain(ctx context.Context, id int64) ([]domain.Area, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Area), args.Error(1)
}
func (m *MockAreaRepo) ListUnclassifiedCountries(ctx context.Context, minDiagonal, maxDiagonal float64) ([]domain.Area, error) {
	args := m.Called(ctx, minDiagonal, maxDiagonal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Area), args.Error(1)
}
func (m *MockAreaRepo) AssignZoomByCountry(ctx context.Context, areaType domain.AreaType, countries []string, zoomLevel int32) (int64, error) {
	args := m.Called(ctx, areaType, countries, zoomLevel)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAreaRepo) CountUnclassifiedCountries(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Query(ctx context.Context, scope repository.ActivityScope, kind domain.PointKind, since *time.Time, page, limit int32) ([]domain.ActivityRecord, error) {
	args := m.Called(ctx, scope, kind, since, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecord), args.Error(1)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) CreateWithOwner(ctx context.Context, org *domain.Organization, ownerID int64) error {
	args := m.Called(ctx, org, ownerID)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrganizationRepo) AddMember(ctx context.Context, orgID, userID int64, role domain.OrganizationRole) error {
	args := m.Called(ctx, orgID, userID, role)
	return args.Error(0)
}
func (m *MockOrganizationRepo) RemoveMember(ctx context.Context, orgID, userID int64) error {
	args := m.Called(ctx, orgID, userID)
	return args.Error(0)
}

// MockSubscriptionRepo
type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) Subscribe(ctx context.Context, sub *domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}
func (m *MockSubscriptionRepo) Unsubscribe(ctx context.Context, kind domain.SubjectKind, subjectID, areaID int64) error {
	args := m.Called(ctx, kind, subjectID, areaID)
	return args.Error(0)
}
func (m *MockSubscriptionRepo) ListDue(ctx context.Context, now time.Time) ([]domain.DigestCandidate, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DigestCandidate), args.Error(1)
}
func (m *MockSubscriptionRepo) MarkSent(ctx context.Context, marks []domain.SentMark, sentAt time.Time) error {
	args := m.Called(ctx, marks, sentAt)
	return args.Error(0)
}

// MockVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockRateLimiter
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string, limitPerHour int32) (bool, error) {
	args := m.Called(ctx, key, limitPerHour)
	return args.Bool(0), args.Error(1)
}
