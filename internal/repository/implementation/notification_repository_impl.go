package implementation

import (
	"context"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/mapper"
	"walkaudit-be/internal/model"
	"walkaudit-be/internal/repository/contract"
	"walkaudit-be/internal/repository/specification"

	"gorm.io/gorm"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	m := r.mapper.ToModel(notification)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*notification = *r.mapper.ToEntity(m)
	return nil
}

// MarkRead scopes the update by user id so a user cannot acknowledge
// another user's notification.
func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id uint, userId uint) error {
	result := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userId).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	var models []*model.Notification
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Notification, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.Feedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.FeedbackToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feedback, error) {
	var models []*model.Feedback
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Feedback, len(models))
	for i, m := range models {
		entities[i] = r.mapper.FeedbackToEntity(m)
	}
	return entities, nil
}

type PayHistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewPayHistoryRepository(db *gorm.DB) contract.PayHistoryRepository {
	return &PayHistoryRepositoryImpl{db: db}
}

func (r *PayHistoryRepositoryImpl) Create(ctx context.Context, record *entity.PayHistory) error {
	m := &model.PayHistory{
		UserId: record.UserId,
		Amount: record.Amount,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	record.Id = m.Id
	record.Timestamp = m.Timestamp
	return nil
}

func (r *PayHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PayHistory, error) {
	var models []*model.PayHistory
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PayHistory, len(models))
	for i, m := range models {
		entities[i] = &entity.PayHistory{
			Id:        m.Id,
			UserId:    m.UserId,
			Amount:    m.Amount,
			Timestamp: m.Timestamp,
		}
	}
	return entities, nil
}

type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) contract.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	m := &model.AuditLog{
		UserId: log.UserId,
		Action: log.Action,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.Id = m.Id
	log.Timestamp = m.Timestamp
	return nil
}

func (r *AuditLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	var models []*model.AuditLog
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AuditLog, len(models))
	for i, m := range models {
		entities[i] = &entity.AuditLog{
			Id:        m.Id,
			UserId:    m.UserId,
			Action:    m.Action,
			Timestamp: m.Timestamp,
		}
	}
	return entities, nil
}
