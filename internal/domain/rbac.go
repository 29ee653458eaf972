package domain

// Role is one of the three tiers of the directory.
type Role string

const (
	RoleSuperAdmin   Role = "superAdmin"
	RoleCompanyAdmin Role = "companyAdmin"
	RoleEmployee     Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleEmployee:
		return true
	}
	return false
}

// IsAdmin reports whether the role belongs to the admin tier.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleCompanyAdmin
}

// Resources and actions checked by the role policy.
const (
	ResourceTenant   = "tenant"
	ResourceCompany  = "company"
	ResourceEmployee = "employee"
	ResourceProfile  = "profile"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionList   = "list"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type EnforceRequest struct {
	Role     Role
	Resource string
	Action   string
}
