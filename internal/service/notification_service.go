package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/logger"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
	"walkaudit-be/internal/websocket"
	"walkaudit-be/pkg/events"
	pkgNats "walkaudit-be/pkg/nats"

	"gorm.io/gorm"
)

type INotificationService interface {
	Start()
	GetAll(ctx context.Context, userId uint) ([]*dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userId, notificationId uint) error
}

// NotificationService turns domain events from the bus into persistent
// notification rows and real-time pushes.
type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pkgNats.Subscriber
	notifier   *websocket.Notifier
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pkgNats.Subscriber,
	notifier *websocket.Notifier,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		notifier:   notifier,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, notifications disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	switch typeCode {
	case events.TypeReportAssigned:
		orgId, ok := numericField(payload, "org_id")
		if !ok {
			return nil
		}
		reportId, _ := numericField(payload, "report_id")
		message := fmt.Sprintf("A new report (#%d) was assigned to your organization", reportId)
		return s.notifyOrgMembers(ctx, orgId, message)

	case events.TypeReportResolved:
		reportId, ok := numericField(payload, "report_id")
		if !ok {
			return nil
		}
		return s.notifyReportAuthor(ctx, reportId, fmt.Sprintf("Your report (#%d) has been resolved", reportId))

	default:
		return nil
	}
}

// numericField reads a number out of a decoded JSON payload, where all
// numbers arrive as float64.
func numericField(payload map[string]interface{}, key string) (uint, bool) {
	value, ok := payload[key].(float64)
	if !ok || value < 0 {
		return 0, false
	}
	return uint(value), true
}

func (s *NotificationService) notifyOrgMembers(ctx context.Context, orgId uint, message string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx, specification.Filter("org_id", orgId))
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := s.deliver(ctx, uow, user.Id, message); err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) notifyReportAuthor(ctx context.Context, reportId uint, message string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: reportId})
	if err != nil {
		return err
	}
	if report == nil {
		return nil
	}
	return s.deliver(ctx, uow, report.UserId, message)
}

func (s *NotificationService) deliver(ctx context.Context, uow unitofwork.UnitOfWork, userId uint, message string) error {
	notification := &entity.Notification{
		UserId:  userId,
		Message: message,
	}
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return err
	}
	if s.notifier != nil {
		s.notifier.Send(ctx, userId, notification)
	}
	return nil
}

func (s *NotificationService) GetAll(ctx context.Context, userId uint) ([]*dto.NotificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notifications, err := uow.NotificationRepository().FindAll(ctx,
		specification.Filter("user_id", userId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = &dto.NotificationResponse{
			Id:        n.Id,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return result, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userId, notificationId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	err := uow.NotificationRepository().MarkRead(ctx, notificationId, userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return serverutils.NewNotFound("notification not found")
	}
	return err
}
