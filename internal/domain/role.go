package domain

// GlobalRole is an account's platform-wide role. The zero-valued checks in
// Satisfies treat GlobalRoleCommon as a virtual role: it never gates access
// by itself, endpoints requiring it do their own membership checks.
type GlobalRole string

const (
	GlobalRoleSuperAdmin    GlobalRole = "superAdmin"
	GlobalRoleAdministrator GlobalRole = "administrator"
	GlobalRoleManager       GlobalRole = "manager"
	GlobalRoleAuthenticated GlobalRole = "authenticated"
	// GlobalRoleCommon is never stored. It marks authorization contexts
	// that only need area or organization membership.
	GlobalRoleCommon GlobalRole = "common"
)

// Level orders global roles, higher dominating lower. Unknown role codes
// rank below every known one.
func (r GlobalRole) Level() int {
	switch r {
	case GlobalRoleSuperAdmin:
		return 4
	case GlobalRoleAdministrator:
		return 3
	case GlobalRoleManager:
		return 2
	case GlobalRoleAuthenticated:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether the role meets the required bar. Common always
// passes; authenticated passes for any registered account.
func (r GlobalRole) Satisfies(required GlobalRole) bool {
	if required == GlobalRoleCommon {
		return true
	}
	if required == GlobalRoleAuthenticated {
		return r.Level() >= GlobalRoleAuthenticated.Level()
	}
	return r.Level() >= required.Level()
}

// AreaRole is a role scoped to one area.
type AreaRole string

const (
	AreaRoleAdmin   AreaRole = "admin"
	AreaRoleManager AreaRole = "manager"
	AreaRoleMember  AreaRole = "member"
)

// CanManage reports whether the role may act on the area itself rather than
// just participate in it.
func (r AreaRole) CanManage() bool {
	return r == AreaRoleAdmin || r == AreaRoleManager
}

// OrganizationRole is a role scoped to one organization.
type OrganizationRole string

const (
	OrganizationRoleManager OrganizationRole = "manager"
	OrganizationRoleMember  OrganizationRole = "member"
)

// AreaRoleAssignment binds the session's subject to a role in one area. A
// subject holds at most one role per area.
type AreaRoleAssignment struct {
	AreaID int64    `json:"area_id"`
	Role   AreaRole `json:"role"`
}

// OrganizationRoleAssignment binds the subject to a role in one
// organization.
type OrganizationRoleAssignment struct {
	OrganizationID int64            `json:"organization_id"`
	Role           OrganizationRole `json:"role"`
}

// Session is one resolved caller: the account plus every role membership,
// loaded in a single fetch. It travels in the request context and is never
// shared across requests.
type Session struct {
	User              *User                        `json:"user"`
	GlobalRole        GlobalRole                   `json:"global_role"`
	AreaRoles         []AreaRoleAssignment         `json:"area_roles,omitempty"`
	OrganizationRoles []OrganizationRoleAssignment `json:"organization_roles,omitempty"`
}

// AreaRoleFor returns the subject's role in the area, or "" when none.
func (s *Session) AreaRoleFor(areaID int64) AreaRole {
	for _, a := range s.AreaRoles {
		if a.AreaID == areaID {
			return a.Role
		}
	}
	return ""
}

// OrganizationRoleFor returns the subject's role in the organization, or
// "" when none.
func (s *Session) OrganizationRoleFor(orgID int64) OrganizationRole {
	for _, o := range s.OrganizationRoles {
		if o.OrganizationID == orgID {
			return o.Role
		}
	}
	return ""
}

// CanManageArea checks the most specific applicable scope first, falling
// back to the global role.
func (s *Session) CanManageArea(areaID int64) bool {
	if s.AreaRoleFor(areaID).CanManage() {
		return true
	}
	return s.GlobalRole == GlobalRoleSuperAdmin
}

// CanManageOrganization mirrors CanManageArea for organization scope.
func (s *Session) CanManageOrganization(orgID int64) bool {
	if s.OrganizationRoleFor(orgID) == OrganizationRoleManager {
		return true
	}
	return s.GlobalRole == GlobalRoleSuperAdmin
}
