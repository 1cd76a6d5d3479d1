package implementation

import (
	"context"
	"errors"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/mapper"
	"walkaudit-be/internal/model"
	"walkaudit-be/internal/repository/contract"
	"walkaudit-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportMapper
}

func NewReportRepository(db *gorm.DB) contract.ReportRepository {
	return &ReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *ReportRepositoryImpl) Create(ctx context.Context, report *entity.Report) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *ReportRepositoryImpl) Update(ctx context.Context, report *entity.Report) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Omit("Images").Save(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *ReportRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Images").Delete(&model.Report{Id: id}).Error
}

func (r *ReportRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error) {
	var m model.Report
	query := applySpecifications(r.db.WithContext(ctx).Preload("Images").Preload("User"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	var models []*model.Report
	query := applySpecifications(r.db.WithContext(ctx).Preload("Images").Preload("User"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Report, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ReportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Report{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ReportRepositoryImpl) AddImage(ctx context.Context, image *entity.Image) error {
	m := &model.Image{ReportId: image.ReportId, ImagePath: image.ImagePath}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	image.Id = m.Id
	image.CreatedAt = m.CreatedAt
	return nil
}

func (r *ReportRepositoryImpl) CreateResolvedHistory(ctx context.Context, history *entity.ResolvedHistory) error {
	m := &model.ResolvedHistory{ReportId: history.ReportId, ResolvedBy: history.ResolvedBy}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	history.Id = m.Id
	history.ResolvedAt = m.ResolvedAt
	return nil
}

type AssignmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ReportMapper
}

func NewAssignmentRepository(db *gorm.DB) contract.AssignmentRepository {
	return &AssignmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewReportMapper(),
	}
}

func (r *AssignmentRepositoryImpl) Create(ctx context.Context, assignment *entity.ReportAssignment) error {
	m := r.mapper.AssignmentToModel(assignment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*assignment = *r.mapper.AssignmentToEntity(m)
	return nil
}

func (r *AssignmentRepositoryImpl) Update(ctx context.Context, assignment *entity.ReportAssignment) error {
	m := r.mapper.AssignmentToModel(assignment)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *AssignmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReportAssignment, error) {
	var m model.ReportAssignment
	query := applySpecifications(r.db.WithContext(ctx).Preload("Report").Preload("Report.Images").Preload("Report.User"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AssignmentToEntity(&m), nil
}

func (r *AssignmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportAssignment, error) {
	var models []*model.ReportAssignment
	query := applySpecifications(r.db.WithContext(ctx).Preload("Report").Preload("Report.Images").Preload("Report.User"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ReportAssignment, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AssignmentToEntity(m)
	}
	return entities, nil
}
