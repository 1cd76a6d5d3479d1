package contract

import (
	"context"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/repository/specification"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	Update(ctx context.Context, org *entity.Organization) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Organization, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Association replacement for the profile update endpoints.
	ReplaceAreas(ctx context.Context, orgId uint, areas []entity.Area) error
	ReplaceCategories(ctx context.Context, orgId uint, categories []entity.Category) error
}

type OrgLinkRepository interface {
	Create(ctx context.Context, link *entity.OrgLink) error
	Update(ctx context.Context, link *entity.OrgLink) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.OrgLink, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrgLink, error)
}

type AreaRepository interface {
	Create(ctx context.Context, area *entity.Area) error
	Update(ctx context.Context, area *entity.Area) error
	Delete(ctx context.Context, id uint) error
	FindByName(ctx context.Context, name string) (*entity.Area, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Area, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error)
}
