package domain

// AreaType is one level of the geographic containment hierarchy.
type AreaType string

const (
	AreaTypeContinent   AreaType = "continent"
	AreaTypeCountry     AreaType = "country"
	AreaTypeAA1         AreaType = "aa1"
	AreaTypeAA2         AreaType = "aa2"
	AreaTypeAA3         AreaType = "aa3"
	AreaTypeLocality    AreaType = "locality"
	AreaTypeSubLocality AreaType = "subLocality"
	AreaTypeStreet      AreaType = "street"
	AreaTypeZip         AreaType = "zip"
)

// AreaTypesBySpecificity lists every level coarsest first. Containment
// resolution walks this order; "most specific" means the last populated
// level.
var AreaTypesBySpecificity = []AreaType{
	AreaTypeContinent,
	AreaTypeCountry,
	AreaTypeAA1,
	AreaTypeAA2,
	AreaTypeAA3,
	AreaTypeLocality,
	AreaTypeSubLocality,
	AreaTypeStreet,
	AreaTypeZip,
}

// Area is one node of the hierarchy. Ancestor names are denormalized onto
// every row so containment resolves without recursive queries. Diagonal is
// the bounding-box diagonal in meters; ZoomLevel stays nil until the
// classification batch assigns one.
type Area struct {
	ID          int64    `json:"id"`
	Type        AreaType `json:"type"`
	Continent   string   `json:"continent,omitempty"`
	Country     string   `json:"country,omitempty"`
	AA1         string   `json:"aa1,omitempty"`
	AA2         string   `json:"aa2,omitempty"`
	AA3         string   `json:"aa3,omitempty"`
	Locality    string   `json:"locality,omitempty"`
	SubLocality string   `json:"sub_locality,omitempty"`
	Street      string   `json:"street,omitempty"`
	Zip         string   `json:"zip,omitempty"`
	CenterLat   float64  `json:"center_lat"`
	CenterLong  float64  `json:"center_long"`
	Diagonal    float64  `json:"diagonal"`
	ZoomLevel   *int32   `json:"zoom_level,omitempty"`
}

// ZoomTier buckets countries by bounding-box diagonal. Tiers are half-open
// [MinDiagonal, MaxDiagonal) so every diagonal lands in exactly one tier.
type ZoomTier struct {
	MinDiagonal float64
	MaxDiagonal float64
	// TargetType is the hierarchy level the zoom is assigned at. Larger
	// countries push the display level down to their subdivisions.
	TargetType AreaType
	ZoomLevel  int32
}

// Contains reports whether the diagonal falls inside the tier.
func (t ZoomTier) Contains(diagonal float64) bool {
	return diagonal >= t.MinDiagonal && diagonal < t.MaxDiagonal
}
