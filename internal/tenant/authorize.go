package tenant

import (
	"go-directory/internal/domain"
	"go-directory/internal/shared/apperror"

	"github.com/google/uuid"
)

// Authorize is the second stage of the guard, run against a loaded target.
// superAdmin always passes. A companyAdmin passes only for its own company.
// Targets without a company belong to no tenant and pass for superAdmin only.
func Authorize(p domain.Principal, target *uuid.UUID) error {
	if p.IsSuperAdmin() {
		return nil
	}
	if p.IsCompanyAdmin() && p.CompanyID != nil && target != nil && *p.CompanyID == *target {
		return nil
	}
	return apperror.ErrForbidden
}

// SameCompany reports whether a and b name the same company.
func SameCompany(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}
