package specification

import "gorm.io/gorm"

// ByReportAndOrg pins a chat to its (report, organization) pair.
type ByReportAndOrg struct {
	ReportId uint
	OrgId    uint
}

func (s ByReportAndOrg) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("report_id = ? AND org_id = ?", s.ReportId, s.OrgId)
}

// ByChat selects the messages of one conversation.
type ByChat struct {
	ChatId uint
}

func (s ByChat) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatId)
}

// OldestFirst is the history-fetch ordering: insertion order by created_at,
// id as tiebreaker so equal timestamps stay stable.
type OldestFirst struct{}

func (s OldestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
