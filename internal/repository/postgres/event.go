package postgres

import (
	"context"
	"database/sql"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (organization_id, area_id, name, description, start_time, end_time,
	                              confirmation_sent, feedback_sent, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, false, false, $7) RETURNING id`
	e.CreatedOn = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		e.OrganizationID, e.AreaID, e.Name, e.Description, e.StartTime, e.EndTime, e.CreatedOn).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	e := &domain.Event{}
	query := `SELECT id, organization_id, area_id, name, COALESCE(description, ''), start_time, end_time,
	                 confirmation_sent, feedback_sent, created_on
	          FROM events WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OrganizationID, &e.AreaID, &e.Name, &e.Description, &e.StartTime, &e.EndTime,
		&e.ConfirmationSent, &e.FeedbackSent, &e.CreatedOn)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Join(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_users (event_id, user_id) VALUES ($1, $2)`, eventID, userID)
	return err
}

func (r *eventRepository) Leave(ctx context.Context, eventID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM event_users WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

const eventColumns = `id, organization_id, area_id, name, COALESCE(description, ''), start_time, end_time,
	confirmation_sent, feedback_sent, created_on`

func (r *eventRepository) listEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.AreaID, &e.Name, &e.Description,
			&e.StartTime, &e.EndTime, &e.ConfirmationSent, &e.FeedbackSent, &e.CreatedOn); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListNeedingConfirmation(ctx context.Context, now time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE confirmation_sent = false
	            AND start_time >= $1 + INTERVAL '1 day'
	            AND start_time <  $1 + INTERVAL '2 days'
	          ORDER BY start_time ASC`
	return r.listEvents(ctx, query, now)
}

func (r *eventRepository) ListNeedingFeedback(ctx context.Context, now time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
	          WHERE feedback_sent = false
	            AND end_time <= $1 - INTERVAL '1 day'
	            AND end_time >  $1 - INTERVAL '2 days'
	          ORDER BY end_time ASC`
	return r.listEvents(ctx, query, now)
}

func (r *eventRepository) Attendees(ctx context.Context, eventID int64) ([]domain.EventAttendee, error) {
	query := `SELECT eu.event_id, eu.user_id, u.email, COALESCE(u.name, '')
	          FROM event_users eu
	          JOIN users u ON u.id = eu.user_id
	          WHERE eu.event_id = $1
	          ORDER BY eu.user_id`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []domain.EventAttendee
	for rows.Next() {
		var a domain.EventAttendee
		if err := rows.Scan(&a.EventID, &a.UserID, &a.Email, &a.Name); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *eventRepository) MarkConfirmationSent(ctx context.Context, eventID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET confirmation_sent = true WHERE id = $1`, eventID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *eventRepository) MarkFeedbackSent(ctx context.Context, eventID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET feedback_sent = true WHERE id = $1`, eventID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
