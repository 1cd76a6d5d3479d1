package entity

import "time"

// Chat is the coordination thread for one report and one organization.
// There is never more than one chat per (report, organization) pair.
type Chat struct {
	Id        uint
	ReportId  uint
	OrgId     uint
	CreatedAt time.Time
}

// ChatMessage is immutable once persisted.
type ChatMessage struct {
	Id        uint
	ChatId    uint
	ReportId  uint
	UserId    uint
	Text      *string
	Image     *string
	CreatedAt time.Time
}
