package service

import (
	"context"
	"database/sql"
	"testing"

	"cleanspot-backend/internal/domain"

	"github.com/stretchr/testify/assert"

	"github.com/lib/pq"
)

func managerSession(orgID int64) *domain.Session {
	return &domain.Session{
		User:       &domain.User{ID: 5},
		GlobalRole: domain.GlobalRoleAuthenticated,
		OrganizationRoles: []domain.OrganizationRoleAssignment{
			{OrganizationID: orgID, Role: domain.OrganizationRoleManager},
		},
	}
}

func memberSession(orgID int64) *domain.Session {
	return &domain.Session{
		User:       &domain.User{ID: 6},
		GlobalRole: domain.GlobalRoleAuthenticated,
		OrganizationRoles: []domain.OrganizationRoleAssignment{
			{OrganizationID: orgID, Role: domain.OrganizationRoleMember},
		},
	}
}

func TestOrganizationService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("MemberForbidden", func(t *testing.T) {
		mockOrgs := new(MockOrganizationRepo)
		svc := NewOrganizationService(mockOrgs)

		err := svc.Delete(ctx, memberSession(1), 1)
		assert.ErrorIs(t, err, ErrForbidden)
		mockOrgs.AssertNotCalled(t, "Delete")
	})

	t.Run("ManagerAllowed", func(t *testing.T) {
		mockOrgs := new(MockOrganizationRepo)
		svc := NewOrganizationService(mockOrgs)

		mockOrgs.On("Delete", ctx, int64(1)).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, managerSession(1), 1))
		mockOrgs.AssertExpectations(t)
	})

	t.Run("SuperAdminAllowedWithoutMembership", func(t *testing.T) {
		mockOrgs := new(MockOrganizationRepo)
		svc := NewOrganizationService(mockOrgs)

		admin := &domain.Session{User: &domain.User{ID: 1}, GlobalRole: domain.GlobalRoleSuperAdmin}
		mockOrgs.On("Delete", ctx, int64(2)).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, admin, 2))
	})

	t.Run("ManagerOfOtherOrgForbidden", func(t *testing.T) {
		mockOrgs := new(MockOrganizationRepo)
		svc := NewOrganizationService(mockOrgs)

		err := svc.Delete(ctx, managerSession(1), 2)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestOrganizationService_Create(t *testing.T) {
	ctx := context.Background()
	mockOrgs := new(MockOrganizationRepo)
	svc := NewOrganizationService(mockOrgs)

	session := &domain.Session{User: &domain.User{ID: 5}, GlobalRole: domain.GlobalRoleAuthenticated}
	org := &domain.Organization{Name: "River Cleaners"}
	mockOrgs.On("CreateWithOwner", ctx, org, int64(5)).Return(nil).Once()

	assert.NoError(t, svc.Create(ctx, session, org))
	mockOrgs.AssertExpectations(t)
}

func TestOrganizationService_AddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateIsConflict", func(t *testing.T) {
		mockOrgs := new(MockOrganizationRepo)
		svc := NewOrganizationService(mockOrgs)

		mockOrgs.On("AddMember", ctx, int64(1), int64(8), domain.OrganizationRoleMember).
			Return(&pq.Error{Code: "23505"}).Once()

		err := svc.AddMember(ctx, managerSession(1), 1, 8, domain.OrganizationRoleMember)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestOrganizationService_Get(t *testing.T) {
	ctx := context.Background()
	mockOrgs := new(MockOrganizationRepo)
	svc := NewOrganizationService(mockOrgs)

	mockOrgs.On("GetByID", ctx, int64(404)).Return(nil, sql.ErrNoRows).Once()

	_, err := svc.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
