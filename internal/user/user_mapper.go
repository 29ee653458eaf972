package user

import (
	"time"

	"go-directory/internal/asset"
	"go-directory/internal/domain"
)

// ToResponse renders u with its asset keys resolved to URLs.
func ToResponse(u *User, resolver *asset.Resolver) *UserResponse {
	resp := &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Position:    u.Position,
		CompanyName: u.CompanyName,
		Role:        string(domain.RoleEmployee),
		AvatarURL:   resolver.Resolve(asset.BucketPhotos, u.AvatarKey),
		CoverURL:    resolver.Resolve(asset.BucketCovers, u.CoverKey),
		Address:     u.Address,
		Website:     u.Website,
		WorkingHours: WorkingHours{
			Start: u.WorkingHoursStart,
			End:   u.WorkingHoursEnd,
		},
		Languages: append([]string{}, u.Languages...),
		Facebook:  u.Facebook,
		Instagram: u.Instagram,
		XTwitter:  u.XTwitter,
		LinkedIn:  u.LinkedIn,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
	if u.CompanyID != nil {
		companyID := u.CompanyID.String()
		resp.CompanyID = &companyID
	}
	return resp
}
