package service

import (
	"context"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

// Credential is one bearer credential presented on a request.
type Credential struct {
	// Token is a session ID token issued by the identity provider.
	Token string
	// ApiKey is a stored key in "keyID.secret" form. Exactly one of Token
	// and ApiKey is set.
	ApiKey string
}

type AuthService interface {
	// Resolve verifies the credential, loads the account with every role
	// membership and checks it against the role the calling context
	// requires (GlobalRoleCommon for membership-only checks).
	Resolve(ctx context.Context, cred Credential, required domain.GlobalRole) (*domain.Session, error)
	// MintApiKey creates a key for the user and returns its one-time
	// plaintext "keyID.secret" form.
	MintApiKey(ctx context.Context, userID int64, limitPerHour int32) (*domain.ApiKey, string, error)
}

type AreaService interface {
	GetArea(ctx context.Context, id int64) (*domain.Area, error)
	// AncestorChain resolves the full containment chain for the area,
	// coarsest first, ending with the area itself.
	AncestorChain(ctx context.Context, id int64) ([]domain.Area, error)
	// ClassifyZoomLevels runs the one-time zoom assignment batch and
	// returns per-tier assignment counts plus the number of countries left
	// unclassified (a data-quality figure, not an error).
	ClassifyZoomLevels(ctx context.Context) (*ZoomClassificationReport, error)
}

// ZoomClassificationReport summarizes one classification batch.
type ZoomClassificationReport struct {
	AssignedPerTier []int64 `json:"assigned_per_tier"`
	Unclassified    int64   `json:"unclassified"`
}

type ActivityService interface {
	// ListActivity is the interactive paged activity view.
	ListActivity(ctx context.Context, scope repository.ActivityScope, kind domain.PointKind, page, limit int32) ([]domain.ActivityRecord, error)
	// AreaDigest gathers activity in one area since the given time, capped
	// at limit records, bucketed into created/updated/cleaned.
	AreaDigest(ctx context.Context, areaID int64, since *time.Time, limit int32) (*domain.Digest, error)
}

type PointService interface {
	Report(ctx context.Context, session *domain.Session, point *domain.Point, gps *domain.Gps) error
	UpdateStatus(ctx context.Context, session *domain.Session, pointID int64, status domain.PointStatus, note string) error
	GetPoint(ctx context.Context, id int64) (*domain.Point, error)
}

type OrganizationService interface {
	Create(ctx context.Context, session *domain.Session, org *domain.Organization) error
	Get(ctx context.Context, id int64) (*domain.Organization, error)
	Update(ctx context.Context, session *domain.Session, org *domain.Organization) error
	Delete(ctx context.Context, session *domain.Session, id int64) error
	AddMember(ctx context.Context, session *domain.Session, orgID, userID int64, role domain.OrganizationRole) error
	RemoveMember(ctx context.Context, session *domain.Session, orgID, userID int64) error
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, session *domain.Session, sub *domain.Subscription) error
	Unsubscribe(ctx context.Context, session *domain.Session, kind domain.SubjectKind, subjectID, areaID int64) error
	// UnsubscribeByToken serves the one-click link embedded in digest emails.
	UnsubscribeByToken(ctx context.Context, token string) error
}

type EventService interface {
	Create(ctx context.Context, session *domain.Session, event *domain.Event) error
	Join(ctx context.Context, session *domain.Session, eventID int64) error
	Leave(ctx context.Context, session *domain.Session, eventID int64) error
}

type EmailService interface {
	// SendDigest renders and sends one area digest; unsubscribeURL is the
	// signed one-click link for the destination subscription.
	SendDigest(ctx context.Context, to, toName, areaName string, digest *domain.Digest, unsubscribeURL string) error
	SendEventConfirmation(ctx context.Context, to, toName string, event *domain.Event) error
	SendEventFeedback(ctx context.Context, to, toName string, event *domain.Event) error
}
