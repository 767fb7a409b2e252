package domain

import "time"

// SubjectKind distinguishes who owns a subscription.
type SubjectKind string

const (
	SubjectUser         SubjectKind = "user"
	SubjectOrganization SubjectKind = "organization"
)

// Subscription is a user's or organization's opt-in to periodic digest
// emails for one area. NotificationLastSent stays nil until the first
// successful send; the digest job never considers rows with
// NotificationFrequency <= 0.
type Subscription struct {
	SubjectKind           SubjectKind `json:"subject_kind"`
	SubjectID             int64       `json:"subject_id"`
	AreaID                int64       `json:"area_id"`
	NotificationFrequency int64       `json:"notification_frequency_seconds"`
	NotificationLastSent  *time.Time  `json:"notification_last_sent,omitempty"`
}

// Due reports whether enough time has elapsed since the last digest.
func (s Subscription) Due(now time.Time) bool {
	if s.NotificationFrequency <= 0 {
		return false
	}
	if s.NotificationLastSent == nil {
		return true
	}
	return now.Sub(*s.NotificationLastSent) > time.Duration(s.NotificationFrequency)*time.Second
}

// DigestCandidate is one due subscription joined to its recipient, in the
// order the digest job must process it.
type DigestCandidate struct {
	Subscription
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
}

// SentMark records one successfully delivered digest, accumulated during a
// run and flushed as a batch watermark update.
type SentMark struct {
	SubjectKind SubjectKind
	SubjectID   int64
	AreaID      int64
}
