package domain

import "time"

// ActivityAction classifies one activity record for digest bucketing.
type ActivityAction string

const (
	ActionCreate ActivityAction = "create"
	ActionUpdate ActivityAction = "update"
)

// ActivityRecord is a derived view of one historical change to a point,
// produced by joining the activity log against points, reporters, GPS rows
// and images. It is never persisted; the aggregator recomputes it on demand.
type ActivityRecord struct {
	Type       PointKind      `json:"type"`
	Action     ActivityAction `json:"action"`
	EntityID   int64          `json:"entity_id"`
	ActivityID int64          `json:"activity_id"`
	Images     []string       `json:"images,omitempty"`
	Gps        Gps            `json:"gps"`
	Area       *Area          `json:"area,omitempty"`
	Note       string         `json:"note,omitempty"`
	Status     PointStatus    `json:"status"`
	Timestamp  time.Time      `json:"timestamp"`
	Reporter   string         `json:"reporter"`
}

// Digest groups one area's new activity for a digest email. A cleaned record
// lands in Cleaned regardless of whether it was the point's first row.
type Digest struct {
	Created []ActivityRecord `json:"created"`
	Updated []ActivityRecord `json:"updated"`
	Cleaned []ActivityRecord `json:"cleaned"`
}

// Empty reports whether the digest has nothing worth sending.
func (d Digest) Empty() bool {
	return len(d.Created) == 0 && len(d.Updated) == 0 && len(d.Cleaned) == 0
}

// Add buckets a record by the classification rule: cleaned status wins,
// otherwise the point's first-ever row is a creation and the rest updates.
func (d *Digest) Add(rec ActivityRecord) {
	switch {
	case rec.Status == StatusCleaned:
		d.Cleaned = append(d.Cleaned, rec)
	case rec.Action == ActionCreate:
		d.Created = append(d.Created, rec)
	default:
		d.Updated = append(d.Updated, rec)
	}
}
