package dto

import "time"

type OrganizationResponse struct {
	Id             uint     `json:"id"`
	Name           string   `json:"name"`
	Industry       string   `json:"industry"`
	ContractStatus string   `json:"contract_status"`
	Code           *string  `json:"code"`
	Region         *string  `json:"region"`
	IsCompany      bool     `json:"is_company"`
	Areas          []string `json:"areas"`
	Categories     []string `json:"categories"`
}

type UpdateOrgProfileRequest struct {
	Name       *string  `json:"name"`
	Industry   *string  `json:"industry"`
	Region     *string  `json:"region"`
	Areas      []string `json:"areas"`
	Categories []string `json:"categories"`
	Password   *string  `json:"password" validate:"omitempty,min=8"`
}

type CreateOrgLinkRequest struct {
	ToOrgId uint `json:"to_org_id" validate:"required"`
}

type UpdateOrgLinkRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type OrgLinkResponse struct {
	Id      uint                  `json:"id"`
	Status  string                `json:"status"`
	FromOrg *OrganizationResponse `json:"from_org,omitempty"`
	ToOrg   *OrganizationResponse `json:"to_org,omitempty"`
}

type AreaRequest struct {
	Name string   `json:"name" validate:"required"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

type AreaResponse struct {
	Id   uint     `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
}

type CategoryResponse struct {
	Id   uint   `json:"id"`
	Name string `json:"name"`
}

type OrgUserResponse struct {
	Id           uint      `json:"id"`
	Code         string    `json:"code"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	Role         string    `json:"role"`
	IsBlocked    bool      `json:"is_blocked"`
	Department   *string   `json:"department"`
	Memo         *string   `json:"memo"`
	PayPayId     *string   `json:"paypay_id"`
	PayPayStatus string    `json:"paypay_status"`
	CreatedAt    time.Time `json:"created_at"`
}
