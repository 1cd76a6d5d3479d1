package dto

type SignupRequest struct {
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8"`
	Name      string   `json:"name" validate:"required"`
	OrgName   string   `json:"org_name" validate:"required"`
	Industry  string   `json:"industry"`
	Region    *string  `json:"region"`
	IsCompany bool     `json:"is_company"`
	Areas     []string `json:"areas"`
}

type SignupGeneralRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	Name           string   `json:"name" validate:"required"`
	SelectedCities []string `json:"selected_cities"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthUserResponse struct {
	Id      uint    `json:"id"`
	Code    string  `json:"code"`
	Email   string  `json:"email"`
	Name    *string `json:"name"`
	Role    string  `json:"role"`
	IsAdmin bool    `json:"is_admin"`
	OrgId   *uint   `json:"org_id"`
	OrgCode *string `json:"org_code"`
	OrgName *string `json:"org_name"`
}

type LoginResponse struct {
	Token string           `json:"token"`
	User  AuthUserResponse `json:"user"`
}
