package mapper

import (
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/model"
)

type ReportMapper struct {
	users *UserMapper
}

func NewReportMapper() *ReportMapper {
	return &ReportMapper{users: NewUserMapper()}
}

func (m *ReportMapper) ToEntity(r *model.Report) *entity.Report {
	if r == nil {
		return nil
	}
	images := make([]entity.Image, len(r.Images))
	for i, img := range r.Images {
		images[i] = entity.Image{
			Id:        img.Id,
			ReportId:  img.ReportId,
			ImagePath: img.ImagePath,
			CreatedAt: img.CreatedAt,
		}
	}
	return &entity.Report{
		Id:          r.Id,
		Title:       r.Title,
		Lat:         r.Lat,
		Lng:         r.Lng,
		Description: r.Description,
		Category:    r.Category,
		Status:      entity.ReportStatus(r.Status),
		Address:     r.Address,
		Rating:      r.Rating,
		Label:       entity.ReportLabel(r.Label),
		OrgId:       r.OrgId,
		UserId:      r.UserId,
		Images:      images,
		User:        m.users.ToEntity(r.User),
		CreatedAt:   r.CreatedAt,
	}
}

func (m *ReportMapper) ToModel(r *entity.Report) *model.Report {
	if r == nil {
		return nil
	}
	images := make([]model.Image, len(r.Images))
	for i, img := range r.Images {
		images[i] = model.Image{
			Id:        img.Id,
			ReportId:  img.ReportId,
			ImagePath: img.ImagePath,
			CreatedAt: img.CreatedAt,
		}
	}
	return &model.Report{
		Id:          r.Id,
		Title:       r.Title,
		Lat:         r.Lat,
		Lng:         r.Lng,
		Description: r.Description,
		Category:    r.Category,
		Status:      string(r.Status),
		Address:     r.Address,
		Rating:      r.Rating,
		Label:       string(r.Label),
		OrgId:       r.OrgId,
		UserId:      r.UserId,
		Images:      images,
		CreatedAt:   r.CreatedAt,
	}
}

func (m *ReportMapper) AssignmentToEntity(a *model.ReportAssignment) *entity.ReportAssignment {
	if a == nil {
		return nil
	}
	return &entity.ReportAssignment{
		Id:          a.Id,
		ReportId:    a.ReportId,
		OrgId:       a.OrgId,
		AssignedBy:  a.AssignedBy,
		Status:      entity.AssignmentStatus(a.Status),
		AssignedAt:  a.AssignedAt,
		CompletedAt: a.CompletedAt,
		Report:      m.ToEntity(a.Report),
	}
}

func (m *ReportMapper) AssignmentToModel(a *entity.ReportAssignment) *model.ReportAssignment {
	if a == nil {
		return nil
	}
	return &model.ReportAssignment{
		Id:          a.Id,
		ReportId:    a.ReportId,
		OrgId:       a.OrgId,
		AssignedBy:  a.AssignedBy,
		Status:      string(a.Status),
		AssignedAt:  a.AssignedAt,
		CompletedAt: a.CompletedAt,
	}
}
