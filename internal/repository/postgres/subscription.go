package postgres

import (
	"context"
	"database/sql"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Subscribe(ctx context.Context, sub *domain.Subscription) error {
	var query string
	switch sub.SubjectKind {
	case domain.SubjectOrganization:
		query = `INSERT INTO organization_areas (organization_id, area_id, notification_frequency)
		         VALUES ($1, $2, $3)`
	default:
		query = `INSERT INTO user_areas (user_id, area_id, notification_frequency)
		         VALUES ($1, $2, $3)`
	}
	_, err := r.db.ExecContext(ctx, query, sub.SubjectID, sub.AreaID, sub.NotificationFrequency)
	return err
}

func (r *subscriptionRepository) Unsubscribe(ctx context.Context, kind domain.SubjectKind, subjectID, areaID int64) error {
	var query string
	switch kind {
	case domain.SubjectOrganization:
		query = `DELETE FROM organization_areas WHERE organization_id = $1 AND area_id = $2`
	default:
		query = `DELETE FROM user_areas WHERE user_id = $1 AND area_id = $2`
	}
	res, err := r.db.ExecContext(ctx, query, subjectID, areaID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListDue merges user and organization subscriptions into one candidate
// list. NULLS FIRST puts never-notified subscriptions ahead so a poison
// record later in the list cannot starve them across runs.
func (r *subscriptionRepository) ListDue(ctx context.Context, now time.Time) ([]domain.DigestCandidate, error) {
	query := `
		SELECT kind, subject_id, area_id, notification_frequency, notification_last_sent, email, name FROM (
			SELECT 'user' AS kind, ua.user_id AS subject_id, ua.area_id,
			       ua.notification_frequency, ua.notification_last_sent,
			       u.email, COALESCE(u.name, '') AS name
			FROM user_areas ua
			JOIN users u ON u.id = ua.user_id
			UNION ALL
			SELECT 'organization' AS kind, oa.organization_id AS subject_id, oa.area_id,
			       oa.notification_frequency, oa.notification_last_sent,
			       o.contact_email AS email, o.name
			FROM organization_areas oa
			JOIN organizations o ON o.id = oa.organization_id
		) s
		WHERE s.notification_frequency > 0
		  AND (s.notification_last_sent IS NULL
		       OR s.notification_last_sent < $1 - (s.notification_frequency * INTERVAL '1 second'))
		ORDER BY s.notification_last_sent ASC NULLS FIRST, s.subject_id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.DigestCandidate
	for rows.Next() {
		var (
			c        domain.DigestCandidate
			kind     string
			lastSent sql.NullTime
		)
		if err := rows.Scan(&kind, &c.SubjectID, &c.AreaID, &c.NotificationFrequency,
			&lastSent, &c.RecipientEmail, &c.RecipientName); err != nil {
			return nil, err
		}
		c.SubjectKind = domain.SubjectKind(kind)
		if lastSent.Valid {
			t := lastSent.Time
			c.NotificationLastSent = &t
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *subscriptionRepository) MarkSent(ctx context.Context, marks []domain.SentMark, sentAt time.Time) error {
	if len(marks) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, m := range marks {
		var query string
		switch m.SubjectKind {
		case domain.SubjectOrganization:
			query = `UPDATE organization_areas SET notification_last_sent = $1
			         WHERE organization_id = $2 AND area_id = $3`
		default:
			query = `UPDATE user_areas SET notification_last_sent = $1
			         WHERE user_id = $2 AND area_id = $3`
		}
		if _, err := tx.ExecContext(ctx, query, sentAt, m.SubjectID, m.AreaID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
