package repository

import (
	"context"
	"time"

	"cleanspot-backend/internal/domain"
)

// ActivityScope narrows an aggregator query to one area or to a set of
// reporters. Exactly one of the two should be set.
type ActivityScope struct {
	AreaID  int64
	UserIDs []int64
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetAccountByExternalID loads the account plus every role membership in
	// one fetch, keyed by the identity-provider subject.
	GetAccountByExternalID(ctx context.Context, externalID string) (*domain.Session, error)
	GetAccountByID(ctx context.Context, id int64) (*domain.Session, error)
}

type AreaRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Area, error)
	// AncestorChain returns the area's ancestors from continent down to the
	// area itself, resolved through the denormalized hierarchy columns.
	AncestorChain(ctx context.Context, id int64) ([]domain.Area, error)
	// ListUnclassifiedCountries selects countries without a zoom level whose
	// bounding diagonal falls in [minDiagonal, maxDiagonal).
	ListUnclassifiedCountries(ctx context.Context, minDiagonal, maxDiagonal float64) ([]domain.Area, error)
	// AssignZoomByCountry bulk-assigns a zoom level to unclassified rows of
	// the given type inside the named countries, returning the row count.
	AssignZoomByCountry(ctx context.Context, areaType domain.AreaType, countries []string, zoomLevel int32) (int64, error)
	CountUnclassifiedCountries(ctx context.Context) (int64, error)
}

type OrganizationRepository interface {
	// CreateWithOwner inserts the organization and the creator's manager
	// membership in one transaction.
	CreateWithOwner(ctx context.Context, org *domain.Organization, ownerID int64) error
	GetByID(ctx context.Context, id int64) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, orgID, userID int64, role domain.OrganizationRole) error
	RemoveMember(ctx context.Context, orgID, userID int64) error
}

type SubscriptionRepository interface {
	Subscribe(ctx context.Context, sub *domain.Subscription) error
	Unsubscribe(ctx context.Context, kind domain.SubjectKind, subjectID, areaID int64) error
	// ListDue returns every due subscription joined to its recipient,
	// ordered by last-sent ascending with never-notified rows first.
	ListDue(ctx context.Context, now time.Time) ([]domain.DigestCandidate, error)
	// MarkSent advances the watermark of every listed subscription to sentAt
	// in a single transaction.
	MarkSent(ctx context.Context, marks []domain.SentMark, sentAt time.Time) error
}

type ApiKeyRepository interface {
	Create(ctx context.Context, key *domain.ApiKey) error
	GetByKeyID(ctx context.Context, keyID string) (*domain.ApiKey, error)
}

type PointRepository interface {
	// Create inserts the GPS row, the point and its first activity row in
	// one transaction.
	Create(ctx context.Context, point *domain.Point, gps *domain.Gps) error
	GetByID(ctx context.Context, id int64) (*domain.Point, error)
	// AppendActivity records a status change in the append-only log and
	// refreshes the point's current status, transactionally.
	AppendActivity(ctx context.Context, activity *domain.PointActivity) error
}

type ActivityRepository interface {
	// Query builds the derived activity view: activity rows joined to their
	// point, reporter, GPS row, most specific area and images. A nil since
	// is unbounded; kind "" matches both point kinds.
	Query(ctx context.Context, scope ActivityScope, kind domain.PointKind, since *time.Time, page, limit int32) ([]domain.ActivityRecord, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Join(ctx context.Context, eventID, userID int64) error
	Leave(ctx context.Context, eventID, userID int64) error
	// ListNeedingConfirmation returns events starting between one and two
	// days from now whose confirmation emails have not gone out.
	ListNeedingConfirmation(ctx context.Context, now time.Time) ([]domain.Event, error)
	// ListNeedingFeedback returns events that ended one to two days ago
	// whose feedback emails have not gone out.
	ListNeedingFeedback(ctx context.Context, now time.Time) ([]domain.Event, error)
	Attendees(ctx context.Context, eventID int64) ([]domain.EventAttendee, error)
	MarkConfirmationSent(ctx context.Context, eventID int64) error
	MarkFeedbackSent(ctx context.Context, eventID int64) error
}
