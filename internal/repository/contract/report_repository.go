package contract

import (
	"context"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/repository/specification"
)

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	Update(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Report, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	AddImage(ctx context.Context, image *entity.Image) error
	CreateResolvedHistory(ctx context.Context, history *entity.ResolvedHistory) error
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.ReportAssignment) error
	Update(ctx context.Context, assignment *entity.ReportAssignment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ReportAssignment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ReportAssignment, error)
}
