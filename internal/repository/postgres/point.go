package postgres

import (
	"context"
	"database/sql"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type pointRepository struct {
	db *sql.DB
}

func NewPointRepository(db *sql.DB) repository.PointRepository {
	return &pointRepository{db: db}
}

// Create inserts the GPS row, the point and its first activity row in one
// read-committed transaction so a new report is never visible without its
// creation history.
func (r *pointRepository) Create(ctx context.Context, p *domain.Point, gps *domain.Gps) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO gps (lat, long, continent_id, country_id, aa1_id, aa2_id, aa3_id,
		                  locality_id, sub_locality_id, street_id, zip_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		gps.Lat, gps.Long, gps.ContinentID, gps.CountryID, gps.AA1ID, gps.AA2ID, gps.AA3ID,
		gps.LocalityID, gps.SubLocalityID, gps.StreetID, gps.ZipID).Scan(&gps.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	p.GpsID = gps.ID
	p.CreatedOn = now
	p.UpdatedOn = now
	if p.Status == "" {
		p.Status = domain.StatusStillHere
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO points (kind, gps_id, reporter_id, status, note, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		string(p.Kind), p.GpsID, p.ReporterID, string(p.Status), p.Note, p.CreatedOn, p.UpdatedOn).Scan(&p.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO point_activities (point_id, user_id, status, note, created_on)
		 VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.ReporterID, string(p.Status), p.Note, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *pointRepository) GetByID(ctx context.Context, id int64) (*domain.Point, error) {
	p := &domain.Point{}
	var kind, status string
	query := `SELECT id, kind, gps_id, reporter_id, status, COALESCE(note, ''), created_on, updated_on
	          FROM points WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &kind, &p.GpsID, &p.ReporterID, &status, &p.Note, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	p.Kind = domain.PointKind(kind)
	p.Status = domain.PointStatus(status)
	return p, nil
}

func (r *pointRepository) AppendActivity(ctx context.Context, a *domain.PointActivity) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	a.CreatedOn = time.Now().UTC()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO point_activities (point_id, user_id, status, note, created_on)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.PointID, a.UserID, string(a.Status), a.Note, a.CreatedOn).Scan(&a.ID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE points SET status = $1, updated_on = $2 WHERE id = $3`,
		string(a.Status), a.CreatedOn, a.PointID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}

	return tx.Commit()
}
