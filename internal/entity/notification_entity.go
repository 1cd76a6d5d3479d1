package entity

import "time"

type Notification struct {
	Id        uint
	UserId    uint
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

type Feedback struct {
	Id        uint
	UserId    uint
	Rating    int
	Comment   *string
	CreatedAt time.Time
}

type PayHistory struct {
	Id        uint
	UserId    uint
	Amount    int
	Timestamp time.Time
}

// AuditLog records admin-visible actions (assignments, payouts, moderation).
type AuditLog struct {
	Id        uint
	Action    string
	UserId    *uint
	Timestamp time.Time
}
