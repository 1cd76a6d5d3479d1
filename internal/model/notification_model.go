package model

import "time"

type Notification struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	UserId    uint      `gorm:"not null;index"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

type Feedback struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	UserId    uint      `gorm:"not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Feedback) TableName() string {
	return "feedback"
}

type PayHistory struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	UserId    uint      `gorm:"not null;index"`
	Amount    int       `gorm:"not null"`
	Timestamp time.Time `gorm:"autoCreateTime"`
}

func (PayHistory) TableName() string {
	return "pay_history"
}

type AuditLog struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	Action    string    `gorm:"type:text;not null"`
	UserId    *uint     `gorm:"index"`
	Timestamp time.Time `gorm:"autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "logs"
}
