package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"cleanspot-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_GetAccountByExternalID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	accountColumns := []string{"id", "external_id", "email", "name", "global_role", "created_on",
		"area_id", "area_role", "organization_id", "org_role"}

	t.Run("DeduplicatesJoinFanout", func(t *testing.T) {
		// Two area roles and one organization role fan out to two rows; the
		// organization membership repeats on both.
		rows := sqlmock.NewRows(accountColumns).
			AddRow(1, "uid-1", "a@test.com", "A", "authenticated", created, 10, "member", 20, "manager").
			AddRow(1, "uid-1", "a@test.com", "A", "authenticated", created, 11, "manager", 20, "manager")

		mock.ExpectQuery("SELECT u.id, u.external_id").
			WithArgs("uid-1").
			WillReturnRows(rows)

		session, err := repo.GetAccountByExternalID(ctx, "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), session.User.ID)
		assert.Equal(t, domain.GlobalRoleAuthenticated, session.GlobalRole)
		assert.Len(t, session.AreaRoles, 2)
		assert.Len(t, session.OrganizationRoles, 1)
		assert.Equal(t, domain.OrganizationRoleManager, session.OrganizationRoles[0].Role)
	})

	t.Run("NoMemberships", func(t *testing.T) {
		rows := sqlmock.NewRows(accountColumns).
			AddRow(2, "uid-2", "b@test.com", "B", "administrator", created, nil, nil, nil, nil)

		mock.ExpectQuery("SELECT u.id, u.external_id").
			WithArgs("uid-2").
			WillReturnRows(rows)

		session, err := repo.GetAccountByExternalID(ctx, "uid-2")
		assert.NoError(t, err)
		assert.Equal(t, domain.GlobalRoleAdministrator, session.GlobalRole)
		assert.Empty(t, session.AreaRoles)
		assert.Empty(t, session.OrganizationRoles)
	})

	t.Run("UnknownSubject", func(t *testing.T) {
		mock.ExpectQuery("SELECT u.id, u.external_id").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := repo.GetAccountByExternalID(ctx, "ghost")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
