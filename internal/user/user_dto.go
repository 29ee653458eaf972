package user

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type UserResponse struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Phone        string       `json:"phone"`
	Position     string       `json:"position"`
	CompanyName  string       `json:"company_name"`
	CompanyID    *string      `json:"company_id"`
	Role         string       `json:"role"`
	AvatarURL    *string      `json:"avatar_url"`
	CoverURL     *string      `json:"cover_url"`
	Address      string       `json:"address"`
	Website      string       `json:"website"`
	WorkingHours WorkingHours `json:"working_hours"`
	Languages    []string     `json:"languages"`
	Facebook     string       `json:"facebook"`
	Instagram    string       `json:"instagram"`
	XTwitter     string       `json:"x_twitter"`
	LinkedIn     string       `json:"linked_in"`
	CreatedAt    string       `json:"created_at"`
	UpdatedAt    string       `json:"updated_at"`
}

// ProfileCardResponse is the public card of one employee.
type ProfileCardResponse struct {
	User            UserResponse `json:"user"`
	CompanyCoverURL *string      `json:"company_cover_url"`
}

type RosterResponse struct {
	CompanyID       string         `json:"company_id"`
	CompanyName     string         `json:"company_name"`
	CompanyCoverURL *string        `json:"company_cover_url"`
	Employees       []UserResponse `json:"employees"`
}

// ProfileFields are the fields an employee may change on their own record.
type ProfileFields struct {
	FirstName         *string  `json:"first_name" form:"first_name" validate:"omitempty,notblank,min=2,max=50"`
	LastName          *string  `json:"last_name" form:"last_name" validate:"omitempty,max=50"`
	Phone             *string  `json:"phone" form:"phone" validate:"omitempty,digits"`
	Password          *string  `json:"password" form:"password" validate:"omitempty,min=8,max=72"`
	Address           *string  `json:"address" form:"address" validate:"omitempty,max=255"`
	Website           *string  `json:"website" form:"website" validate:"omitempty,url"`
	WorkingHoursStart *string  `json:"working_hours_start" form:"working_hours_start" validate:"omitempty,datetime=15:04"`
	WorkingHoursEnd   *string  `json:"working_hours_end" form:"working_hours_end" validate:"omitempty,datetime=15:04"`
	Languages         []string `json:"languages" form:"languages" validate:"omitempty,max=20,dive,min=1,max=50"`
	Facebook          *string  `json:"facebook" form:"facebook" validate:"omitempty,url"`
	Instagram         *string  `json:"instagram" form:"instagram" validate:"omitempty,url"`
	XTwitter          *string  `json:"x_twitter" form:"x_twitter" validate:"omitempty,url"`
	LinkedIn          *string  `json:"linked_in" form:"linked_in" validate:"omitempty,url"`
}

// UpdateUserRequest is the admin allow-list. CompanyName moves the employee.
type UpdateUserRequest struct {
	ProfileFields
	Email       *string `json:"email" form:"email" validate:"omitempty,email"`
	Position    *string `json:"position" form:"position" validate:"omitempty,notblank,max=100"`
	CompanyName *string `json:"company_name" form:"company_name" validate:"omitempty,notblank,max=150"`
}

type UpdateProfileRequest struct {
	ProfileFields
}
