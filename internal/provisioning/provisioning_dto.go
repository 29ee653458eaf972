package provisioning

import "go-directory/internal/user"

// CreateTenantRequest bootstraps a company together with its admin.
type CreateTenantRequest struct {
	Email         string `json:"email" form:"email" validate:"required,email,max=254"`
	Password      string `json:"password" form:"password" validate:"required,min=8,max=72"`
	CompanyName   string `json:"company_name" form:"company_name" validate:"required,notblank,max=150"`
	EmployeeLimit *int   `json:"employee_limit" form:"employee_limit" validate:"required,gte=0,lte=100000"`
}

// OnboardEmployeeRequest carries the required identity fields plus the
// optional profile fields an admin may prefill.
type OnboardEmployeeRequest struct {
	FirstName   string `json:"first_name" form:"first_name" validate:"required,notblank,min=2,max=50"`
	LastName    string `json:"last_name" form:"last_name" validate:"omitempty,max=50"`
	Email       string `json:"email" form:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" form:"phone" validate:"required,digits,max=20"`
	Position    string `json:"position" form:"position" validate:"required,notblank,max=100"`
	Password    string `json:"password" form:"password" validate:"required,min=8,max=72"`
	CompanyName string `json:"company_name" form:"company_name" validate:"required,notblank,max=150"`

	Address           string   `json:"address" form:"address" validate:"omitempty,max=255"`
	Website           string   `json:"website" form:"website" validate:"omitempty,url"`
	WorkingHoursStart string   `json:"working_hours_start" form:"working_hours_start" validate:"omitempty,datetime=15:04"`
	WorkingHoursEnd   string   `json:"working_hours_end" form:"working_hours_end" validate:"omitempty,datetime=15:04"`
	Languages         []string `json:"languages" form:"languages" validate:"omitempty,max=20,dive,min=1,max=50"`
	Facebook          string   `json:"facebook" form:"facebook" validate:"omitempty,url"`
	Instagram         string   `json:"instagram" form:"instagram" validate:"omitempty,url"`
	XTwitter          string   `json:"x_twitter" form:"x_twitter" validate:"omitempty,url"`
	LinkedIn          string   `json:"linked_in" form:"linked_in" validate:"omitempty,url"`
}

type OnboardEmployeeResponse struct {
	Employee       user.UserResponse `json:"employee"`
	CompanyCreated bool              `json:"company_created"`
}
