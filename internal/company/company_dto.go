package company

type CompanyResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	EmployeeIDs   []string `json:"employee_ids"`
	EmployeeCount int      `json:"employee_count"`
	AdminID       *string  `json:"admin_id"`
	AdminEmail    string   `json:"admin_email,omitempty"`
	EmployeeLimit *int     `json:"employee_limit,omitempty"`
	LogoURL       *string  `json:"logo_url"`
	CoverURL      *string  `json:"cover_url"`
}

// UpdateCompanyRequest is the allow-list of company fields a caller may set.
// Admin fields are reserved for superAdmin.
type UpdateCompanyRequest struct {
	Name          *string `json:"name" form:"name" validate:"omitempty,notblank,max=150"`
	AdminEmail    *string `json:"admin_email" form:"admin_email" validate:"omitempty,email,max=254"`
	EmployeeLimit *int    `json:"employee_limit" form:"employee_limit" validate:"omitempty,gte=0,lte=100000"`
}

func (r UpdateCompanyRequest) touchesAdmin() bool {
	return r.AdminEmail != nil || r.EmployeeLimit != nil
}
