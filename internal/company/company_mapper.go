package company

import (
	"go-directory/internal/admin"
	"go-directory/internal/asset"
)

// ToResponse renders c with its asset keys resolved. a is the linked admin,
// nil when absent.
func ToResponse(c *Company, a *admin.Admin, resolver *asset.Resolver) *CompanyResponse {
	resp := &CompanyResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		EmployeeIDs:   append([]string{}, c.EmployeeIDs...),
		EmployeeCount: len(c.EmployeeIDs),
		LogoURL:       resolver.Resolve(asset.BucketLogos, c.LogoKey),
		CoverURL:      resolver.Resolve(asset.BucketCovers, c.CoverKey),
	}
	if c.AdminID != nil {
		adminID := c.AdminID.String()
		resp.AdminID = &adminID
	}
	if a != nil {
		resp.AdminEmail = a.Email
		limit := a.EmployeeSeatLimit
		resp.EmployeeLimit = &limit
	}
	return resp
}
