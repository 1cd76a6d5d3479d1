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

type AreaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrganizationMapper
}

func NewAreaRepository(db *gorm.DB) contract.AreaRepository {
	return &AreaRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrganizationMapper(),
	}
}

func (r *AreaRepositoryImpl) Create(ctx context.Context, area *entity.Area) error {
	m := &model.Area{Name: area.Name, Lat: area.Lat, Lng: area.Lng}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	area.Id = m.Id
	return nil
}

func (r *AreaRepositoryImpl) Update(ctx context.Context, area *entity.Area) error {
	m := &model.Area{Id: area.Id, Name: area.Name, Lat: area.Lat, Lng: area.Lng}
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *AreaRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Area{}, id).Error
}

func (r *AreaRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Area, error) {
	var m model.Area
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AreaToEntity(&m), nil
}

func (r *AreaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Area, error) {
	var models []*model.Area
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Area, len(models))
	for i, m := range models {
		entities[i] = r.mapper.AreaToEntity(m)
	}
	return entities, nil
}

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) contract.CategoryRepository {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entity.Category) error {
	m := &model.Category{Name: category.Name}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	category.Id = m.Id
	return nil
}

func (r *CategoryRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var m model.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.Category{Id: m.Id, Name: m.Name}, nil
}

func (r *CategoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	var models []*model.Category
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Category, len(models))
	for i, m := range models {
		entities[i] = &entity.Category{Id: m.Id, Name: m.Name}
	}
	return entities, nil
}
