package domain

import "time"

// Event is an organized cleanup happening in an area. The sent flags guard
// the reminder sub-jobs so each email goes out exactly once.
type Event struct {
	ID               int64     `json:"id"`
	OrganizationID   int64     `json:"organization_id"`
	AreaID           int64     `json:"area_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ConfirmationSent bool      `json:"-"`
	FeedbackSent     bool      `json:"-"`
	CreatedOn        time.Time `json:"created_on"`
}

// EventAttendee joins a user to an event, carrying the fields the reminder
// emails need.
type EventAttendee struct {
	EventID int64  `json:"event_id"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}
