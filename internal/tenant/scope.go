// Package tenant holds the ownership rules that keep one company's records
// away from another company's administrator.
package tenant

import (
	"go-directory/internal/domain"

	"gorm.io/gorm"
)

// Scope narrows a query on a table with a company_id column to the rows p may
// see. superAdmin sees every row; a principal without a company sees none.
func Scope(p domain.Principal) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.IsSuperAdmin() {
			return db
		}
		if p.CompanyID == nil {
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", *p.CompanyID)
	}
}
