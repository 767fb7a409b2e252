package domain

import "time"

// User is a registered account. ExternalID is the identity-provider subject
// (Firebase UID); the provider owns credentials, this row owns roles.
type User struct {
	ID         int64      `json:"id"`
	ExternalID string     `json:"-"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	GlobalRole GlobalRole `json:"global_role"`
	CreatedOn  time.Time  `json:"created_on"`
}

// ApiKey grants programmatic access tied to a user account. The secret is
// stored only as a bcrypt hash; LimitPerHour caps calls per clock hour.
type ApiKey struct {
	ID           int64     `json:"id"`
	KeyID        string    `json:"key_id"`
	SecretHash   string    `json:"-"`
	UserID       int64     `json:"user_id"`
	LimitPerHour int32     `json:"limit_per_hour"`
	CreatedOn    time.Time `json:"created_on"`
}
