package postgres

import (
	"context"
	"database/sql"
	"time"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (external_id, email, name, global_role, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	u.CreatedOn = time.Now().UTC()
	if u.GlobalRole == "" {
		u.GlobalRole = domain.GlobalRoleAuthenticated
	}
	return r.db.QueryRowContext(ctx, query, u.ExternalID, u.Email, u.Name, string(u.GlobalRole), u.CreatedOn).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, external_id, email, COALESCE(name, ''), global_role, created_on FROM users WHERE id = $1`
	var role string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.ExternalID, &u.Email, &u.Name, &role, &u.CreatedOn)
	if err != nil {
		return nil, err
	}
	u.GlobalRole = domain.GlobalRole(role)
	return u, nil
}

func (r *userRepository) GetAccountByExternalID(ctx context.Context, externalID string) (*domain.Session, error) {
	return r.loadAccount(ctx, `u.external_id = $1`, externalID)
}

func (r *userRepository) GetAccountByID(ctx context.Context, id int64) (*domain.Session, error) {
	return r.loadAccount(ctx, `u.id = $1`, id)
}

// loadAccount fetches the account row with both role-membership tables in a
// single query. Role columns come back NULL for users without memberships.
func (r *userRepository) loadAccount(ctx context.Context, where string, arg any) (*domain.Session, error) {
	query := `
		SELECT u.id, u.external_id, u.email, COALESCE(u.name, ''), u.global_role, u.created_on,
		       uar.area_id, uar.role,
		       uor.organization_id, uor.role
		FROM users u
		LEFT JOIN user_area_roles uar ON uar.user_id = u.id
		LEFT JOIN user_organization_roles uor ON uor.user_id = u.id
		WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var session *domain.Session
	seenArea := make(map[int64]bool)
	seenOrg := make(map[int64]bool)

	for rows.Next() {
		var (
			u          domain.User
			globalRole string
			areaID     sql.NullInt64
			areaRole   sql.NullString
			orgID      sql.NullInt64
			orgRole    sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.ExternalID, &u.Email, &u.Name, &globalRole, &u.CreatedOn,
			&areaID, &areaRole, &orgID, &orgRole); err != nil {
			return nil, err
		}
		if session == nil {
			u.GlobalRole = domain.GlobalRole(globalRole)
			session = &domain.Session{User: &u, GlobalRole: u.GlobalRole}
		}
		if areaID.Valid && areaRole.Valid && !seenArea[areaID.Int64] {
			seenArea[areaID.Int64] = true
			session.AreaRoles = append(session.AreaRoles, domain.AreaRoleAssignment{
				AreaID: areaID.Int64,
				Role:   domain.AreaRole(areaRole.String),
			})
		}
		if orgID.Valid && orgRole.Valid && !seenOrg[orgID.Int64] {
			seenOrg[orgID.Int64] = true
			session.OrganizationRoles = append(session.OrganizationRoles, domain.OrganizationRoleAssignment{
				OrganizationID: orgID.Int64,
				Role:           domain.OrganizationRole(orgRole.String),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if session == nil {
		return nil, sql.ErrNoRows
	}
	return session, nil
}
