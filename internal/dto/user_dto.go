package dto

import "time"

type UserSearchFilter struct {
	Query  string `query:"q"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Memo       *string `json:"memo"`
	PayPayId   *string `json:"paypay_id"`
	Role       *string `json:"role" validate:"omitempty,oneof=reporter company city admin"`
	OrgId      *uint   `json:"org_id"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
}

type SetPayStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unsent sent"`
	Amount int    `json:"amount" validate:"omitempty,min=1"`
}

type PayHistoryResponse struct {
	Id        uint      `json:"id"`
	UserId    uint      `json:"user_id"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
