package service

import (
	"context"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"

	"golang.org/x/crypto/bcrypt"
)

type IOrganizationService interface {
	Profile(ctx context.Context, userId uint) (*dto.OrganizationResponse, error)
	UpdateProfile(ctx context.Context, userId uint, req *dto.UpdateOrgProfileRequest) (*dto.OrganizationResponse, error)
	ListCompanies(ctx context.Context) ([]*dto.OrganizationResponse, error)
	ListPartners(ctx context.Context, userId uint) ([]*dto.OrganizationResponse, error)
	RequestLink(ctx context.Context, userId uint, req *dto.CreateOrgLinkRequest) (*dto.OrgLinkResponse, error)
	ListLinks(ctx context.Context, userId uint) ([]*dto.OrgLinkResponse, error)
	UpdateLink(ctx context.Context, userId, linkId uint, req *dto.UpdateOrgLinkRequest) (*dto.OrgLinkResponse, error)
}

type organizationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewOrganizationService(uowFactory unitofwork.RepositoryFactory) IOrganizationService {
	return &organizationService{uowFactory: uowFactory}
}

func (s *organizationService) callerOrg(ctx context.Context, uow unitofwork.UnitOfWork, userId uint) (*entity.User, *entity.Organization, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.OrgId == nil {
		return nil, nil, serverutils.NewForbidden("organization membership required")
	}
	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: *user.OrgId})
	if err != nil {
		return nil, nil, err
	}
	if org == nil {
		return nil, nil, serverutils.NewForbidden("organization not found")
	}
	return user, org, nil
}

func (s *organizationService) Profile(ctx context.Context, userId uint) (*dto.OrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, org, err := s.callerOrg(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return toOrganizationResponse(org), nil
}

func (s *organizationService) UpdateProfile(ctx context.Context, userId uint, req *dto.UpdateOrgProfileRequest) (*dto.OrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, org, err := s.callerOrg(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Industry != nil {
		org.Industry = *req.Industry
	}
	if req.Region != nil {
		org.Region = req.Region
	}
	if err := uow.OrganizationRepository().Update(ctx, org); err != nil {
		return nil, err
	}

	if req.Areas != nil {
		areas, err := s.resolveAreas(ctx, uow, req.Areas)
		if err != nil {
			return nil, err
		}
		if err := uow.OrganizationRepository().ReplaceAreas(ctx, org.Id, areas); err != nil {
			return nil, err
		}
		org.Areas = areas
	}
	if req.Categories != nil {
		categories, err := s.resolveCategories(ctx, uow, req.Categories)
		if err != nil {
			return nil, err
		}
		if err := uow.OrganizationRepository().ReplaceCategories(ctx, org.Id, categories); err != nil {
			return nil, err
		}
		org.Categories = categories
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return toOrganizationResponse(org), nil
}

func (s *organizationService) resolveAreas(ctx context.Context, uow unitofwork.UnitOfWork, names []string) ([]entity.Area, error) {
	areas := make([]entity.Area, 0, len(names))
	for _, name := range names {
		area, err := uow.AreaRepository().FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if area == nil {
			area = &entity.Area{Name: name}
			if err := uow.AreaRepository().Create(ctx, area); err != nil {
				return nil, err
			}
		}
		areas = append(areas, *area)
	}
	return areas, nil
}

func (s *organizationService) resolveCategories(ctx context.Context, uow unitofwork.UnitOfWork, names []string) ([]entity.Category, error) {
	categories := make([]entity.Category, 0, len(names))
	for _, name := range names {
		category, err := uow.CategoryRepository().FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if category == nil {
			category = &entity.Category{Name: name}
			if err := uow.CategoryRepository().Create(ctx, category); err != nil {
				return nil, err
			}
		}
		categories = append(categories, *category)
	}
	return categories, nil
}

func (s *organizationService) ListCompanies(ctx context.Context) ([]*dto.OrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	orgs, err := uow.OrganizationRepository().FindAll(ctx, specification.Filter("is_company", true))
	if err != nil {
		return nil, err
	}
	result := make([]*dto.OrganizationResponse, len(orgs))
	for i, org := range orgs {
		result[i] = toOrganizationResponse(org)
	}
	return result, nil
}

// ListPartners returns organizations linked to the caller's org through an
// approved link, in either direction.
func (s *organizationService) ListPartners(ctx context.Context, userId uint) ([]*dto.OrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, org, err := s.callerOrg(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	links, err := uow.OrgLinkRepository().FindAll(ctx, specification.Filter("status", string(entity.OrgLinkStatusApproved)))
	if err != nil {
		return nil, err
	}

	partners := make([]*dto.OrganizationResponse, 0)
	for _, link := range links {
		var partner *entity.Organization
		switch org.Id {
		case link.FromOrgId:
			partner = link.ToOrg
		case link.ToOrgId:
			partner = link.FromOrg
		default:
			continue
		}
		if partner != nil {
			partners = append(partners, toOrganizationResponse(partner))
		}
	}
	return partners, nil
}

func (s *organizationService) RequestLink(ctx context.Context, userId uint, req *dto.CreateOrgLinkRequest) (*dto.OrgLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, org, err := s.callerOrg(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if org.Id == req.ToOrgId {
		return nil, serverutils.NewBadRequest("cannot link an organization to itself")
	}

	target, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: req.ToOrgId})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, serverutils.NewNotFound("organization not found")
	}

	existing, err := uow.OrgLinkRepository().FindOne(ctx,
		specification.Filter("from_org_id", org.Id),
		specification.Filter("to_org_id", target.Id),
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toOrgLinkResponse(existing), nil
	}

	link := &entity.OrgLink{
		FromOrgId: org.Id,
		ToOrgId:   target.Id,
		Status:    entity.OrgLinkStatusPending,
	}
	if err := uow.OrgLinkRepository().Create(ctx, link); err != nil {
		return nil, err
	}
	return toOrgLinkResponse(link), nil
}

func (s *organizationService) ListLinks(ctx context.Context, userId uint) ([]*dto.OrgLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, org, err := s.callerOrg(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	links, err := uow.OrgLinkRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.OrgLinkResponse, 0)
	for _, link := range links {
		if link.FromOrgId != org.Id && link.ToOrgId != org.Id {
			continue
		}
		result = append(result, toOrgLinkResponse(link))
	}
	return result, nil
}

// UpdateLink lets the receiving organization approve or reject a request.
func (s *organizationService) UpdateLink(ctx context.Context, userId, linkId uint, req *dto.UpdateOrgLinkRequest) (*dto.OrgLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, org, err := s.callerOrg(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	link, err := uow.OrgLinkRepository().FindOne(ctx, specification.ById{Id: linkId})
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, serverutils.NewNotFound("link not found")
	}
	if link.ToOrgId != org.Id {
		return nil, serverutils.NewForbidden("only the receiving organization can decide on a link")
	}

	link.Status = entity.OrgLinkStatus(req.Status)
	if err := uow.OrgLinkRepository().Update(ctx, link); err != nil {
		return nil, err
	}
	return toOrgLinkResponse(link), nil
}

func toOrganizationResponse(org *entity.Organization) *dto.OrganizationResponse {
	areas := make([]string, len(org.Areas))
	for i, area := range org.Areas {
		areas[i] = area.Name
	}
	categories := make([]string, len(org.Categories))
	for i, category := range org.Categories {
		categories[i] = category.Name
	}
	return &dto.OrganizationResponse{
		Id:             org.Id,
		Name:           org.Name,
		Industry:       org.Industry,
		ContractStatus: string(org.ContractStatus),
		Code:           org.Code,
		Region:         org.Region,
		IsCompany:      org.IsCompany,
		Areas:          areas,
		Categories:     categories,
	}
}

func toOrgLinkResponse(link *entity.OrgLink) *dto.OrgLinkResponse {
	resp := &dto.OrgLinkResponse{
		Id:     link.Id,
		Status: string(link.Status),
	}
	if link.FromOrg != nil {
		resp.FromOrg = toOrganizationResponse(link.FromOrg)
	}
	if link.ToOrg != nil {
		resp.ToOrg = toOrganizationResponse(link.ToOrg)
	}
	return resp
}
