package domain

import "time"

// PointKind distinguishes illegal dumps from collection points.
type PointKind string

const (
	PointTrash      PointKind = "trashPoint"
	PointCollection PointKind = "collectionPoint"
)

// PointStatus is the reported state of a point at one moment of its history.
type PointStatus string

const (
	StatusStillHere PointStatus = "stillHere"
	StatusMore      PointStatus = "more"
	StatusLess      PointStatus = "less"
	StatusCleaned   PointStatus = "cleaned"
)

// Gps is a geocoded coordinate. The area pointers are the denormalized
// hierarchy: at most the levels the geocoder resolved are populated, and the
// most specific non-nil one identifies the point's area.
type Gps struct {
	ID            int64   `json:"id"`
	Lat           float64 `json:"lat"`
	Long          float64 `json:"long"`
	ContinentID   *int64  `json:"continent_id,omitempty"`
	CountryID     *int64  `json:"country_id,omitempty"`
	AA1ID         *int64  `json:"aa1_id,omitempty"`
	AA2ID         *int64  `json:"aa2_id,omitempty"`
	AA3ID         *int64  `json:"aa3_id,omitempty"`
	LocalityID    *int64  `json:"locality_id,omitempty"`
	SubLocalityID *int64  `json:"sub_locality_id,omitempty"`
	StreetID      *int64  `json:"street_id,omitempty"`
	ZipID         *int64  `json:"zip_id,omitempty"`
}

// Point is a reported trash or collection point. Its state history lives in
// the append-only activity log; the row itself only carries identity and the
// current status for cheap listing.
type Point struct {
	ID         int64       `json:"id"`
	Kind       PointKind   `json:"kind"`
	GpsID      int64       `json:"gps_id"`
	ReporterID int64       `json:"reporter_id"`
	Status     PointStatus `json:"status"`
	Note       string      `json:"note,omitempty"`
	CreatedOn  time.Time   `json:"created_on"`
	UpdatedOn  time.Time   `json:"updated_on"`
}

// PointActivity is one append-only history row for a point. The earliest row
// per point is its creation; every later row is an update.
type PointActivity struct {
	ID        int64       `json:"id"`
	PointID   int64       `json:"point_id"`
	UserID    int64       `json:"user_id"`
	Status    PointStatus `json:"status"`
	Note      string      `json:"note,omitempty"`
	CreatedOn time.Time   `json:"created_on"`
}
