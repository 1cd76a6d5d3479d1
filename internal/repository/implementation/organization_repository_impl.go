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

type OrganizationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrganizationMapper
}

func NewOrganizationRepository(db *gorm.DB) contract.OrganizationRepository {
	return &OrganizationRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrganizationMapper(),
	}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *entity.Organization) error {
	m := r.mapper.ToModel(org)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*org = *r.mapper.ToEntity(m)
	return nil
}

func (r *OrganizationRepositoryImpl) Update(ctx context.Context, org *entity.Organization) error {
	m := r.mapper.ToModel(org)
	// Associations are replaced explicitly; Save must not touch them.
	if err := r.db.WithContext(ctx).Omit("Areas", "Categories").Save(m).Error; err != nil {
		return err
	}
	return nil
}

func (r *OrganizationRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Organization{}, id).Error
}

func (r *OrganizationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error) {
	var m model.Organization
	query := applySpecifications(r.db.WithContext(ctx).Preload("Areas").Preload("Categories"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OrganizationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error) {
	var models []*model.Organization
	query := applySpecifications(r.db.WithContext(ctx).Preload("Areas").Preload("Categories"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Organization, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *OrganizationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Organization{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrganizationRepositoryImpl) ReplaceAreas(ctx context.Context, orgId uint, areas []entity.Area) error {
	models := make([]model.Area, len(areas))
	for i, a := range areas {
		models[i] = model.Area{Id: a.Id, Name: a.Name, Lat: a.Lat, Lng: a.Lng}
	}
	org := model.Organization{Id: orgId}
	return r.db.WithContext(ctx).Model(&org).Association("Areas").Replace(models)
}

func (r *OrganizationRepositoryImpl) ReplaceCategories(ctx context.Context, orgId uint, categories []entity.Category) error {
	models := make([]model.Category, len(categories))
	for i, c := range categories {
		models[i] = model.Category{Id: c.Id, Name: c.Name}
	}
	org := model.Organization{Id: orgId}
	return r.db.WithContext(ctx).Model(&org).Association("Categories").Replace(models)
}

type OrgLinkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OrganizationMapper
}

func NewOrgLinkRepository(db *gorm.DB) contract.OrgLinkRepository {
	return &OrgLinkRepositoryImpl{
		db:     db,
		mapper: mapper.NewOrganizationMapper(),
	}
}

func (r *OrgLinkRepositoryImpl) Create(ctx context.Context, link *entity.OrgLink) error {
	m := &model.OrgLink{FromOrgId: link.FromOrgId, ToOrgId: link.ToOrgId, Status: string(link.Status)}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	link.Id = m.Id
	return nil
}

func (r *OrgLinkRepositoryImpl) Update(ctx context.Context, link *entity.OrgLink) error {
	return r.db.WithContext(ctx).Model(&model.OrgLink{}).
		Where("id = ?", link.Id).
		Update("status", string(link.Status)).Error
}

func (r *OrgLinkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrgLink, error) {
	var m model.OrgLink
	query := applySpecifications(r.db.WithContext(ctx).Preload("FromOrg").Preload("ToOrg"), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.OrgLinkToEntity(&m), nil
}

func (r *OrgLinkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrgLink, error) {
	var models []*model.OrgLink
	query := applySpecifications(r.db.WithContext(ctx).Preload("FromOrg").Preload("ToOrg"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.OrgLink, len(models))
	for i, m := range models {
		entities[i] = r.mapper.OrgLinkToEntity(m)
	}
	return entities, nil
}
