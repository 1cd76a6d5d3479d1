package unitofwork

import (
	"context"

	"walkaudit-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	OrganizationRepository() contract.OrganizationRepository
	OrgLinkRepository() contract.OrgLinkRepository
	AreaRepository() contract.AreaRepository
	CategoryRepository() contract.CategoryRepository

	ReportRepository() contract.ReportRepository
	AssignmentRepository() contract.AssignmentRepository

	ChatRepository() contract.ChatRepository
	ChatMessageRepository() contract.ChatMessageRepository

	NotificationRepository() contract.NotificationRepository
	FeedbackRepository() contract.FeedbackRepository
	PayHistoryRepository() contract.PayHistoryRepository
	AuditLogRepository() contract.AuditLogRepository
}
