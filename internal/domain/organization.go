package domain

import "time"

// Organization coordinates cleanup work in its subscribed areas. Digest
// emails for organization subscriptions go to ContactEmail.
type Organization struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ContactEmail string    `json:"contact_email"`
	CreatedBy    int64     `json:"created_by"`
	CreatedOn    time.Time `json:"created_on"`
}
