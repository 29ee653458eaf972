package domain

import "github.com/google/uuid"

// Principal is the authenticated identity attached to one operation.
// It is derived from a verified token and never persisted.
type Principal struct {
	SubjectID uuid.UUID
	Role      Role
	CompanyID *uuid.UUID
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

func (p Principal) IsCompanyAdmin() bool {
	return p.Role == RoleCompanyAdmin
}
