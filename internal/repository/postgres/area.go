package postgres

import (
	"context"
	"database/sql"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"

	"github.com/lib/pq"
)

type areaRepository struct {
	db *sql.DB
}

func NewAreaRepository(db *sql.DB) repository.AreaRepository {
	return &areaRepository{db: db}
}

const areaColumns = `id, type, COALESCE(continent, ''), COALESCE(country, ''), COALESCE(aa1, ''),
	COALESCE(aa2, ''), COALESCE(aa3, ''), COALESCE(locality, ''), COALESCE(sub_locality, ''),
	COALESCE(street, ''), COALESCE(zip, ''), center_lat, center_long, diagonal, zoom_level`

const areaColumnsA = `a.id, a.type, COALESCE(a.continent, ''), COALESCE(a.country, ''), COALESCE(a.aa1, ''),
	COALESCE(a.aa2, ''), COALESCE(a.aa3, ''), COALESCE(a.locality, ''), COALESCE(a.sub_locality, ''),
	COALESCE(a.street, ''), COALESCE(a.zip, ''), a.center_lat, a.center_long, a.diagonal, a.zoom_level`

func scanArea(scanner interface{ Scan(...any) error }) (*domain.Area, error) {
	a := &domain.Area{}
	var areaType string
	var zoom sql.NullInt32
	err := scanner.Scan(&a.ID, &areaType, &a.Continent, &a.Country, &a.AA1, &a.AA2, &a.AA3,
		&a.Locality, &a.SubLocality, &a.Street, &a.Zip, &a.CenterLat, &a.CenterLong, &a.Diagonal, &zoom)
	if err != nil {
		return nil, err
	}
	a.Type = domain.AreaType(areaType)
	if zoom.Valid {
		z := zoom.Int32
		a.ZoomLevel = &z
	}
	return a, nil
}

func (r *areaRepository) GetByID(ctx context.Context, id int64) (*domain.Area, error) {
	query := `SELECT ` + areaColumns + ` FROM areas WHERE id = $1`
	return scanArea(r.db.QueryRowContext(ctx, query, id))
}

// AncestorChain matches each coarser level against the child's denormalized
// columns. Levels the child doesn't populate simply find no row.
func (r *areaRepository) AncestorChain(ctx context.Context, id int64) ([]domain.Area, error) {
	query := `
		SELECT ` + areaColumnsA + `
		FROM areas a
		JOIN areas c ON c.id = $1
		WHERE (a.type = 'continent' AND a.continent = c.continent)
		   OR (a.type = 'country' AND a.country = c.country AND a.continent = c.continent)
		   OR (a.type = 'aa1' AND a.aa1 = c.aa1 AND a.country = c.country)
		   OR (a.type = 'aa2' AND a.aa2 = c.aa2 AND a.aa1 = c.aa1 AND a.country = c.country)
		   OR (a.type = 'aa3' AND a.aa3 = c.aa3 AND a.aa2 = c.aa2 AND a.country = c.country)
		   OR (a.type = 'locality' AND a.locality = c.locality AND a.country = c.country)
		   OR (a.type = 'subLocality' AND a.sub_locality = c.sub_locality AND a.locality = c.locality AND a.country = c.country)
		   OR (a.type = 'street' AND a.street = c.street AND a.locality = c.locality AND a.country = c.country)
		   OR (a.type = 'zip' AND a.zip = c.zip AND a.country = c.country)
		ORDER BY array_position(ARRAY['continent','country','aa1','aa2','aa3','locality','subLocality','street','zip'], a.type::text)
	`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chain []domain.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		chain = append(chain, *a)
	}
	return chain, rows.Err()
}

func (r *areaRepository) ListUnclassifiedCountries(ctx context.Context, minDiagonal, maxDiagonal float64) ([]domain.Area, error) {
	query := `SELECT ` + areaColumns + ` FROM areas
	          WHERE type = 'country' AND zoom_level IS NULL AND diagonal >= $1 AND diagonal < $2
	          ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, minDiagonal, maxDiagonal)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []domain.Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, *a)
	}
	return areas, rows.Err()
}

func (r *areaRepository) AssignZoomByCountry(ctx context.Context, areaType domain.AreaType, countries []string, zoomLevel int32) (int64, error) {
	if len(countries) == 0 {
		return 0, nil
	}
	query := `UPDATE areas SET zoom_level = $1
	          WHERE zoom_level IS NULL AND type = $2 AND country = ANY($3)`
	res, err := r.db.ExecContext(ctx, query, zoomLevel, string(areaType), pq.Array(countries))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *areaRepository) CountUnclassifiedCountries(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM areas WHERE type = 'country' AND zoom_level IS NULL`).Scan(&count)
	return count, err
}
