package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cleanspot-backend/internal/config"
	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func digestTestConfig() *config.Config {
	return &config.Config{
		Digest: config.DigestConfig{
			PageSize: 10,
			BaseURL:  "https://cleanspot.example",
		},
	}
}

func newDigestRunner(subs *MockSubscriptionRepo, areas *MockAreaRepo, email *MockEmailService, activity *MockActivityService) *JobRunner {
	return NewJobRunner(subs, areas, new(MockEventRepo), &Services{
		Email:    email,
		Activity: activity,
	}, security.NewUnsubscribeTokenManager("test-secret"), digestTestConfig())
}

func nonEmptyDigest(entityID int64) *domain.Digest {
	return &domain.Digest{
		Created: []domain.ActivityRecord{{EntityID: entityID, Action: domain.ActionCreate, Status: domain.StatusStillHere}},
	}
}

func unsubscribeLink(u string) bool {
	return strings.HasPrefix(u, "https://cleanspot.example/v1/unsubscribe?token=")
}

func TestRunDigest_SendsSeriallyInListedOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	subs := new(MockSubscriptionRepo)
	areas := new(MockAreaRepo)
	email := new(MockEmailService)
	activity := new(MockActivityService)
	jr := newDigestRunner(subs, areas, email, activity)

	t1 := now.Add(-48 * time.Hour)
	t2 := now.Add(-24 * time.Hour)
	candidates := []domain.DigestCandidate{
		{Subscription: domain.Subscription{SubjectKind: domain.SubjectUser, SubjectID: 1, AreaID: 10, NotificationFrequency: 86400}, RecipientEmail: "a@test.com", RecipientName: "A"},
		{Subscription: domain.Subscription{SubjectKind: domain.SubjectUser, SubjectID: 2, AreaID: 11, NotificationFrequency: 86400, NotificationLastSent: &t1}, RecipientEmail: "b@test.com", RecipientName: "B"},
		{Subscription: domain.Subscription{SubjectKind: domain.SubjectOrganization, SubjectID: 3, AreaID: 12, NotificationFrequency: 86400, NotificationLastSent: &t2}, RecipientEmail: "org@test.com", RecipientName: "Org"},
	}
	subs.On("ListDue", ctx, now).Return(candidates, nil).Once()

	activity.On("AreaDigest", ctx, int64(10), (*time.Time)(nil), int32(10)).Return(nonEmptyDigest(1), nil).Once()
	activity.On("AreaDigest", ctx, int64(11), &t1, int32(10)).Return(nonEmptyDigest(2), nil).Once()
	activity.On("AreaDigest", ctx, int64(12), &t2, int32(10)).Return(nonEmptyDigest(3), nil).Once()

	areas.On("GetByID", ctx, int64(10)).Return(&domain.Area{ID: 10, Country: "France"}, nil).Once()
	areas.On("GetByID", ctx, int64(11)).Return(&domain.Area{ID: 11, Locality: "Lyon"}, nil).Once()
	areas.On("GetByID", ctx, int64(12)).Return(&domain.Area{ID: 12, Country: "Hungary"}, nil).Once()

	var sentTo []string
	email.On("SendDigest", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything, mock.MatchedBy(unsubscribeLink)).
		Run(func(args mock.Arguments) {
			sentTo = append(sentTo, args.String(1))
		}).Return(nil).Times(3)

	subs.On("MarkSent", ctx, []domain.SentMark{
		{SubjectKind: domain.SubjectUser, SubjectID: 1, AreaID: 10},
		{SubjectKind: domain.SubjectUser, SubjectID: 2, AreaID: 11},
		{SubjectKind: domain.SubjectOrganization, SubjectID: 3, AreaID: 12},
	}, now).Return(nil).Once()

	err := jr.runDigest(ctx, now)
	assert.NoError(t, err)
	// Never-notified first, then oldest watermark, exactly the listed order.
	assert.Equal(t, []string{"a@test.com", "b@test.com", "org@test.com"}, sentTo)
	subs.AssertExpectations(t)
	email.AssertExpectations(t)
}

func TestRunDigest_AbortsOnFailureButFlushesPartialBatch(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	subs := new(MockSubscriptionRepo)
	areas := new(MockAreaRepo)
	email := new(MockEmailService)
	activity := new(MockActivityService)
	jr := newDigestRunner(subs, areas, email, activity)

	candidates := []domain.DigestCandidate{
		{Subscription: domain.Subscription{SubjectKind: domain.SubjectUser, SubjectID: 1, AreaID: 10, NotificationFrequency: 86400}, RecipientEmail: "a@test.com"},
		{Subscription: domain.Subscription{SubjectKind: domain.SubjectUser, SubjectID: 2, AreaID: 11, NotificationFrequency: 86400}, RecipientEmail: "b@test.com"},
		{Subscription: domain.Subscription{SubjectKind: domain.SubjectUser, SubjectID: 3, AreaID: 12, NotificationFrequency: 86400}, RecipientEmail: "c@test.com"},
	}
	subs.On("ListDue", ctx, now).Return(candidates, nil).Once()

	activity.On("AreaDigest", ctx, int64(10), (*time.Time)(nil), int32(10)).Return(nonEmptyDigest(1), nil).Once()
	activity.On("AreaDigest", ctx, int64(11), (*time.Time)(nil), int32(10)).Return(nonEmptyDigest(2), nil).Once()

	areas.On("GetByID", ctx, int64(10)).Return(&domain.Area{ID: 10}, nil).Once()
	areas.On("GetByID", ctx, int64(11)).Return(&domain.Area{ID: 11}, nil).Once()

	email.On("SendDigest", ctx, "a@test.com", "", mock.AnythingOfType("string"), mock.Anything, mock.MatchedBy(unsubscribeLink)).Return(nil).Once()
	email.On("SendDigest", ctx, "b@test.com", "", mock.AnythingOfType("string"), mock.Anything, mock.MatchedBy(unsubscribeLink)).
		Return(errors.New("smtp 550")).Once()

	// The already-sent first digest is still watermarked, the failed and the
	// never-attempted ones are not.
	subs.On("MarkSent", ctx, []domain.SentMark{
		{SubjectKind: domain.SubjectUser, SubjectID: 1, AreaID: 10},
	}, now).Return(nil).Once()

	err := jr.runDigest(ctx, now)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "smtp 550")
	subs.AssertExpectations(t)
	email.AssertExpectations(t)
	// The third candidate was never aggregated.
	activity.AssertNumberOfCalls(t, "AreaDigest", 2)
}

func TestRunDigest_SkipsWithoutMarking(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	t.Run("MissingRecipientEmail", func(t *testing.T) {
		subs := new(MockSubscriptionRepo)
		areas := new(MockAreaRepo)
		email := new(MockEmailService)
		activity := new(MockActivityService)
		jr := newDigestRunner(subs, areas, email, activity)

		candidates := []domain.DigestCandidate{
			{Subscription: domain.Subscription{SubjectKind: domain.SubjectOrganization, SubjectID: 1, AreaID: 10, NotificationFrequency: 86400}, RecipientEmail: ""},
		}
		subs.On("ListDue", ctx, now).Return(candidates, nil).Once()
		subs.On("MarkSent", ctx, []domain.SentMark(nil), now).Return(nil).Once()

		assert.NoError(t, jr.runDigest(ctx, now))
		activity.AssertNotCalled(t, "AreaDigest")
		email.AssertNotCalled(t, "SendDigest")
	})

	t.Run("EmptyDigest", func(t *testing.T) {
		subs := new(MockSubscriptionRepo)
		areas := new(MockAreaRepo)
		email := new(MockEmailService)
		activity := new(MockActivityService)
		jr := newDigestRunner(subs, areas, email, activity)

		candidates := []domain.DigestCandidate{
			{Subscription: domain.Subscription{SubjectKind: domain.SubjectUser, SubjectID: 1, AreaID: 10, NotificationFrequency: 86400}, RecipientEmail: "a@test.com"},
		}
		subs.On("ListDue", ctx, now).Return(candidates, nil).Once()
		activity.On("AreaDigest", ctx, int64(10), (*time.Time)(nil), int32(10)).Return(&domain.Digest{}, nil).Once()
		// No send means no watermark: the subscription stays due.
		subs.On("MarkSent", ctx, []domain.SentMark(nil), now).Return(nil).Once()

		assert.NoError(t, jr.runDigest(ctx, now))
		email.AssertNotCalled(t, "SendDigest")
	})

	t.Run("NothingDue", func(t *testing.T) {
		subs := new(MockSubscriptionRepo)
		jr := newDigestRunner(subs, new(MockAreaRepo), new(MockEmailService), new(MockActivityService))

		subs.On("ListDue", ctx, now).Return([]domain.DigestCandidate{}, nil).Once()

		assert.NoError(t, jr.runDigest(ctx, now))
		subs.AssertNotCalled(t, "MarkSent")
	})
}
