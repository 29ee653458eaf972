package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token       string  `json:"token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	ID          string  `json:"id"`
	Role        string  `json:"role"`
	CompanyID   *string `json:"company_id"`
	CompanyName string  `json:"company_name,omitempty"`
}

type MeResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	CompanyID     *string `json:"company_id"`
	CompanyName   string  `json:"company_name,omitempty"`
	EmployeeLimit int     `json:"employee_limit"`
}
