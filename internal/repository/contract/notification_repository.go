package contract

import (
	"context"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/repository/specification"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	MarkRead(ctx context.Context, id, userId uint) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error)
}

type PayHistoryRepository interface {
	Create(ctx context.Context, payment *entity.PayHistory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PayHistory, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
}
