package model

import "time"

// Chat carries a composite unique index so that concurrent creators of the
// same (report, org) pair cannot both win; the loser's insert fails with a
// duplicate-key error and is retried as a lookup.
type Chat struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	ReportId  uint      `gorm:"not null;uniqueIndex:idx_chats_report_org"`
	OrgId     uint      `gorm:"not null;uniqueIndex:idx_chats_report_org"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type ChatMessage struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	ChatId    uint      `gorm:"not null;index"`
	ReportId  uint      `gorm:"index"`
	UserId    uint      `gorm:"not null"`
	Text      *string   `gorm:"type:text"`
	Image     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
