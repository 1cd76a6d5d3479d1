package service

import (
	"context"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
)

type ITaxonomyService interface {
	ListAreas(ctx context.Context) ([]*dto.AreaResponse, error)
	CreateArea(ctx context.Context, req *dto.AreaRequest) (*dto.AreaResponse, error)
	UpdateArea(ctx context.Context, areaId uint, req *dto.AreaRequest) (*dto.AreaResponse, error)
	DeleteArea(ctx context.Context, areaId uint) error
	ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error)
}

// taxonomyService manages the shared area and category vocabularies used
// for report routing.
type taxonomyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTaxonomyService(uowFactory unitofwork.RepositoryFactory) ITaxonomyService {
	return &taxonomyService{uowFactory: uowFactory}
}

func (s *taxonomyService) ListAreas(ctx context.Context) ([]*dto.AreaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	areas, err := uow.AreaRepository().FindAll(ctx, specification.OrderBy{Field: "name", Desc: false})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AreaResponse, len(areas))
	for i, area := range areas {
		result[i] = toAreaResponse(area)
	}
	return result, nil
}

func (s *taxonomyService) CreateArea(ctx context.Context, req *dto.AreaRequest) (*dto.AreaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.AreaRepository().FindByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("area already exists")
	}

	area := &entity.Area{
		Name: req.Name,
		Lat:  req.Lat,
		Lng:  req.Lng,
	}
	if err := uow.AreaRepository().Create(ctx, area); err != nil {
		return nil, err
	}
	return toAreaResponse(area), nil
}

func (s *taxonomyService) UpdateArea(ctx context.Context, areaId uint, req *dto.AreaRequest) (*dto.AreaResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	areas, err := uow.AreaRepository().FindAll(ctx, specification.ById{Id: areaId})
	if err != nil {
		return nil, err
	}
	if len(areas) == 0 {
		return nil, serverutils.NewNotFound("area not found")
	}
	area := areas[0]

	area.Name = req.Name
	area.Lat = req.Lat
	area.Lng = req.Lng
	if err := uow.AreaRepository().Update(ctx, area); err != nil {
		return nil, err
	}
	return toAreaResponse(area), nil
}

func (s *taxonomyService) DeleteArea(ctx context.Context, areaId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.AreaRepository().Delete(ctx, areaId)
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	categories, err := uow.CategoryRepository().FindAll(ctx, specification.OrderBy{Field: "name", Desc: false})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.CategoryResponse, len(categories))
	for i, category := range categories {
		result[i] = &dto.CategoryResponse{Id: category.Id, Name: category.Name}
	}
	return result, nil
}

func toAreaResponse(area *entity.Area) *dto.AreaResponse {
	return &dto.AreaResponse{
		Id:   area.Id,
		Name: area.Name,
		Lat:  area.Lat,
		Lng:  area.Lng,
	}
}
