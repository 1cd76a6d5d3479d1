package mapper

import (
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/model"
)

type OrganizationMapper struct{}

func NewOrganizationMapper() *OrganizationMapper {
	return &OrganizationMapper{}
}

func (m *OrganizationMapper) ToEntity(o *model.Organization) *entity.Organization {
	if o == nil {
		return nil
	}
	areas := make([]entity.Area, len(o.Areas))
	for i, a := range o.Areas {
		areas[i] = *m.AreaToEntity(&a)
	}
	categories := make([]entity.Category, len(o.Categories))
	for i, c := range o.Categories {
		categories[i] = entity.Category{Id: c.Id, Name: c.Name}
	}
	return &entity.Organization{
		Id:             o.Id,
		Name:           o.Name,
		Industry:       o.Industry,
		ContractStatus: entity.ContractStatus(o.ContractStatus),
		Code:           o.Code,
		Region:         o.Region,
		IsCompany:      o.IsCompany,
		Areas:          areas,
		Categories:     categories,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (m *OrganizationMapper) ToModel(o *entity.Organization) *model.Organization {
	if o == nil {
		return nil
	}
	areas := make([]model.Area, len(o.Areas))
	for i, a := range o.Areas {
		areas[i] = model.Area{Id: a.Id, Name: a.Name, Lat: a.Lat, Lng: a.Lng}
	}
	categories := make([]model.Category, len(o.Categories))
	for i, c := range o.Categories {
		categories[i] = model.Category{Id: c.Id, Name: c.Name}
	}
	return &model.Organization{
		Id:             o.Id,
		Name:           o.Name,
		Industry:       o.Industry,
		ContractStatus: string(o.ContractStatus),
		Code:           o.Code,
		Region:         o.Region,
		IsCompany:      o.IsCompany,
		Areas:          areas,
		Categories:     categories,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (m *OrganizationMapper) AreaToEntity(a *model.Area) *entity.Area {
	if a == nil {
		return nil
	}
	return &entity.Area{Id: a.Id, Name: a.Name, Lat: a.Lat, Lng: a.Lng}
}

func (m *OrganizationMapper) OrgLinkToEntity(l *model.OrgLink) *entity.OrgLink {
	if l == nil {
		return nil
	}
	return &entity.OrgLink{
		Id:        l.Id,
		FromOrgId: l.FromOrgId,
		ToOrgId:   l.ToOrgId,
		Status:    entity.OrgLinkStatus(l.Status),
		FromOrg:   m.ToEntity(l.FromOrg),
		ToOrg:     m.ToEntity(l.ToOrg),
	}
}
