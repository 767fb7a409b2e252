package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"

	"github.com/lib/pq"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

// activityQuery carries an assembled statement and its parameters. Each
// build produces a fresh pair; nothing mutates shared counters.
type activityQuery struct {
	sql    string
	params []any
}

// mostSpecificArea resolves the single area a GPS row belongs to: the most
// specific populated hierarchy pointer wins.
const mostSpecificArea = `COALESCE(g.zip_id, g.street_id, g.sub_locality_id, g.locality_id,
	g.aa3_id, g.aa2_id, g.aa1_id, g.country_id, g.continent_id)`

func buildActivityQuery(scope repository.ActivityScope, kind domain.PointKind, since *time.Time, page, limit int32) activityQuery {
	var (
		conds  []string
		params []any
	)
	arg := func(v any) string {
		params = append(params, v)
		return fmt.Sprintf("$%d", len(params))
	}

	if scope.AreaID != 0 {
		p := arg(scope.AreaID)
		conds = append(conds, fmt.Sprintf(
			"%s IN (g.continent_id, g.country_id, g.aa1_id, g.aa2_id, g.aa3_id, g.locality_id, g.sub_locality_id, g.street_id, g.zip_id)", p))
	}
	if len(scope.UserIDs) > 0 {
		conds = append(conds, fmt.Sprintf("pa.user_id = ANY(%s)", arg(pq.Array(scope.UserIDs))))
	}
	if kind != "" {
		conds = append(conds, fmt.Sprintf("p.kind = %s", arg(string(kind))))
	}
	if since != nil {
		conds = append(conds, fmt.Sprintf("pa.created_on > %s", arg(*since)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	if page < 1 {
		page = 1
	}
	limitP := arg(limit)
	offsetP := arg((page - 1) * limit)

	q := fmt.Sprintf(`
		SELECT pa.id, pa.point_id, pa.status, COALESCE(pa.note, ''), pa.created_on,
		       p.kind, COALESCE(u.name, u.email) AS reporter,
		       pa.id = first.min_id AS is_create,
		       g.id, g.lat, g.long,
		       g.continent_id, g.country_id, g.aa1_id, g.aa2_id, g.aa3_id,
		       g.locality_id, g.sub_locality_id, g.street_id, g.zip_id,
		       a.id, a.type, a.continent, a.country, a.aa1, a.aa2, a.aa3,
		       a.locality, a.sub_locality, a.street, a.zip,
		       a.center_lat, a.center_long, a.diagonal, a.zoom_level,
		       (SELECT COALESCE(ARRAY_AGG(i.url), '{}') FROM point_activity_images i WHERE i.point_activity_id = pa.id) AS images
		FROM point_activities pa
		JOIN points p ON p.id = pa.point_id
		JOIN users u ON u.id = pa.user_id
		JOIN gps g ON g.id = p.gps_id
		JOIN (SELECT point_id, MIN(id) AS min_id FROM point_activities GROUP BY point_id) first
		  ON first.point_id = pa.point_id
		LEFT JOIN areas a ON a.id = %s
		%s
		ORDER BY pa.created_on DESC, pa.id DESC
		LIMIT %s OFFSET %s`, mostSpecificArea, where, limitP, offsetP)

	return activityQuery{sql: q, params: params}
}

func (r *activityRepository) Query(ctx context.Context, scope repository.ActivityScope, kind domain.PointKind, since *time.Time, page, limit int32) ([]domain.ActivityRecord, error) {
	q := buildActivityQuery(scope, kind, since, page, limit)

	rows, err := r.db.QueryContext(ctx, q.sql, q.params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.ActivityRecord
	for rows.Next() {
		rec, err := scanActivityRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanActivityRecord(rows *sql.Rows) (*domain.ActivityRecord, error) {
	var (
		rec          domain.ActivityRecord
		status, kind string
		isCreate     bool
		images       pq.StringArray

		areaID                  sql.NullInt64
		areaType                sql.NullString
		continent, country      sql.NullString
		aa1, aa2, aa3           sql.NullString
		locality, subLocality   sql.NullString
		street, zip             sql.NullString
		centerLat, centerLong   sql.NullFloat64
		diagonal                sql.NullFloat64
		zoomLevel               sql.NullInt32
	)

	err := rows.Scan(&rec.ActivityID, &rec.EntityID, &status, &rec.Note, &rec.Timestamp,
		&kind, &rec.Reporter, &isCreate,
		&rec.Gps.ID, &rec.Gps.Lat, &rec.Gps.Long,
		&rec.Gps.ContinentID, &rec.Gps.CountryID, &rec.Gps.AA1ID, &rec.Gps.AA2ID, &rec.Gps.AA3ID,
		&rec.Gps.LocalityID, &rec.Gps.SubLocalityID, &rec.Gps.StreetID, &rec.Gps.ZipID,
		&areaID, &areaType, &continent, &country, &aa1, &aa2, &aa3,
		&locality, &subLocality, &street, &zip,
		&centerLat, &centerLong, &diagonal, &zoomLevel,
		&images)
	if err != nil {
		return nil, err
	}

	rec.Status = domain.PointStatus(status)
	rec.Type = domain.PointKind(kind)
	rec.Images = images
	if isCreate {
		rec.Action = domain.ActionCreate
	} else {
		rec.Action = domain.ActionUpdate
	}
	if areaID.Valid {
		area := &domain.Area{
			ID:          areaID.Int64,
			Type:        domain.AreaType(areaType.String),
			Continent:   continent.String,
			Country:     country.String,
			AA1:         aa1.String,
			AA2:         aa2.String,
			AA3:         aa3.String,
			Locality:    locality.String,
			SubLocality: subLocality.String,
			Street:      street.String,
			Zip:         zip.String,
			CenterLat:   centerLat.Float64,
			CenterLong:  centerLong.Float64,
			Diagonal:    diagonal.Float64,
		}
		if zoomLevel.Valid {
			z := zoomLevel.Int32
			area.ZoomLevel = &z
		}
		rec.Area = area
	}
	return &rec, nil
}
