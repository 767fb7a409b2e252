package postgres

import (
	"context"
	"database/sql"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

// CreateWithOwner inserts the organization and the creator's manager
// membership as one read-committed transaction; a failure on either insert
// leaves no partial state behind.
func (r *organizationRepository) CreateWithOwner(ctx context.Context, org *domain.Organization, ownerID int64) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	org.CreatedBy = ownerID
	org.CreatedOn = time.Now().UTC()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO organizations (name, description, contact_email, created_by, created_on)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		org.Name, org.Description, org.ContactEmail, org.CreatedBy, org.CreatedOn).Scan(&org.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_organization_roles (user_id, organization_id, role) VALUES ($1, $2, $3)`,
		ownerID, org.ID, string(domain.OrganizationRoleManager))
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, name, COALESCE(description, ''), contact_email, created_by, created_on
	          FROM organizations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.Description, &o.ContactEmail, &o.CreatedBy, &o.CreatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	query := `UPDATE organizations SET name=$1, description=$2, contact_email=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, org.Name, org.Description, org.ContactEmail, org.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *organizationRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *organizationRepository) AddMember(ctx context.Context, orgID, userID int64, role domain.OrganizationRole) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_organization_roles (user_id, organization_id, role) VALUES ($1, $2, $3)`,
		userID, orgID, string(role))
	return err
}

func (r *organizationRepository) RemoveMember(ctx context.Context, orgID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_organization_roles WHERE user_id = $1 AND organization_id = $2`,
		userID, orgID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow turns a zero-row write into sql.ErrNoRows so services can map
// it to a not-found failure.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
