package dto

import "time"

type AdminSummaryResponse struct {
	TotalReports       int64            `json:"total_reports"`
	ReportsByStatus    map[string]int64 `json:"reports_by_status"`
	TotalUsers         int64            `json:"total_users"`
	TotalOrganizations int64            `json:"total_organizations"`
}

type AuditLogResponse struct {
	Id        uint      `json:"id"`
	Action    string    `json:"action"`
	UserId    *uint     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Role     string  `json:"role" validate:"required,oneof=reporter company city admin"`
	OrgId    *uint   `json:"org_id"`
	Memo     *string `json:"memo"`
}

type UpdateOrganizationRequest struct {
	Name           *string `json:"name"`
	Industry       *string `json:"industry"`
	Region         *string `json:"region"`
	ContractStatus *string `json:"contract_status" validate:"omitempty,oneof=active suspended"`
}

type RecordPayRequest struct {
	UserId uint `json:"user_id" validate:"required"`
	Amount int  `json:"amount" validate:"required,min=1"`
}
