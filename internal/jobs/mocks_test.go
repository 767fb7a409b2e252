package jobs

import (
	"context"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

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

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) Join(ctx context.Context, eventID, userID int64) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}
func (m *MockEventRepo) Leave(ctx context.Context, eventID, userID int64) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}
func (m *MockEventRepo) ListNeedingConfirmation(ctx context.Context, now time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) ListNeedingFeedback(ctx context.Context, now time.Time) ([]domain.Event, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) Attendees(ctx context.Context, eventID int64) ([]domain.EventAttendee, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventAttendee), args.Error(1)
}
func (m *MockEventRepo) MarkConfirmationSent(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
func (m *MockEventRepo) MarkFeedbackSent(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDigest(ctx context.Context, to, toName, areaName string, digest *domain.Digest, unsubscribeURL string) error {
	args := m.Called(ctx, to, toName, areaName, digest, unsubscribeURL)
	return args.Error(0)
}
func (m *MockEmailService) SendEventConfirmation(ctx context.Context, to, toName string, event *domain.Event) error {
	args := m.Called(ctx, to, toName, event)
	return args.Error(0)
}
func (m *MockEmailService) SendEventFeedback(ctx context.Context, to, toName string, event *domain.Event) error {
	args := m.Called(ctx, to, toName, event)
	return args.Error(0)
}

// MockActivityService
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) ListActivity(ctx context.Context, scope repository.ActivityScope, kind domain.PointKind, page, limit int32) ([]domain.ActivityRecord, error) {
	args := m.Called(ctx, scope, kind, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityRecord), args.Error(1)
}
func (m *MockActivityService) AreaDigest(ctx context.Context, areaID int64, since *time.Time, limit int32) (*domain.Digest, error) {
	args := m.Called(ctx, areaID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Digest), args.Error(1)
}
