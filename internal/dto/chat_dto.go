package dto

import "time"

type GetOrCreateChatRequest struct {
	ReportId uint `json:"report_id" validate:"required"`
}

type ChatResponse struct {
	Id        uint      `json:"id"`
	ReportId  uint      `json:"report_id"`
	OrgId     uint      `json:"org_id"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatMessageRequest struct {
	ChatId uint    `json:"chat_id" validate:"required"`
	Text   *string `json:"text"`
	Image  *string `json:"image"`
}

type ChatMessageResponse struct {
	Id        uint      `json:"id"`
	ChatId    uint      `json:"chat_id"`
	Text      *string   `json:"text"`
	Image     *string   `json:"image"`
	SenderId  uint      `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}
