package service

import (
	"context"
	"strings"
	"time"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
	"walkaudit-be/pkg/events"
	pkgNats "walkaudit-be/pkg/nats"
)

type IReportService interface {
	Create(ctx context.Context, userId uint, req *dto.CreateReportRequest) (*dto.ReportResponse, error)
	ListOwn(ctx context.Context, userId uint, filter *dto.ReportFilter) ([]*dto.ReportResponse, error)
	ListForOrg(ctx context.Context, userId uint, filter *dto.ReportFilter) ([]*dto.ReportResponse, error)
	Get(ctx context.Context, userId, reportId uint) (*dto.ReportResponse, error)
	Update(ctx context.Context, userId, reportId uint, req *dto.UpdateReportRequest) (*dto.ReportResponse, error)
	Delete(ctx context.Context, userId, reportId uint) error
	UpdateStatus(ctx context.Context, userId, reportId uint, status string) (*dto.ReportResponse, error)
	Resolve(ctx context.Context, userId, reportId uint) (*dto.ReportResponse, error)
}

type reportService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
) IReportService {
	return &reportService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *reportService) Create(ctx context.Context, userId uint, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	label, err := classifyReportLabel(ctx, uow, req.Category)
	if err != nil {
		return nil, err
	}

	report := &entity.Report{
		Lat:         req.Lat,
		Lng:         req.Lng,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      entity.ReportStatusNew,
		Address:     req.Address,
		Rating:      req.Rating,
		Label:       label,
		UserId:      userId,
	}

	// City routing only works with an address; reports submitted without
	// one get theirs filled in by the enrichment pipeline, which re-runs
	// the matching.
	if req.Address != nil {
		org, err := matchCityOrganization(ctx, uow, *req.Address)
		if err != nil {
			return nil, err
		}
		if org != nil {
			report.OrgId = &org.Id
		}
	}

	if err := uow.ReportRepository().Create(ctx, report); err != nil {
		return nil, err
	}
	for _, path := range req.ImagePaths {
		image := &entity.Image{ReportId: report.Id, ImagePath: path}
		if err := uow.ReportRepository().AddImage(ctx, image); err != nil {
			return nil, err
		}
		report.Images = append(report.Images, *image)
	}

	if s.publisherService != nil {
		_ = s.publisherService.PublishReportEnrichment(ctx, report.Id)
	}
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewReportCreated(report.Id, userId, string(report.Label)))
	}
	return toReportResponse(report), nil
}

// classifyReportLabel decides whether a category belongs to city or company
// territory by looking at which kind of organization covers it.
func classifyReportLabel(ctx context.Context, uow unitofwork.UnitOfWork, category string) (entity.ReportLabel, error) {
	orgs, err := uow.OrganizationRepository().FindAll(ctx)
	if err != nil {
		return entity.ReportLabelUnknown, err
	}

	label := entity.ReportLabelUnknown
	for _, org := range orgs {
		for _, cat := range org.Categories {
			if !strings.EqualFold(cat.Name, category) {
				continue
			}
			if !org.IsCompany {
				// A city covering the category wins over any company.
				return entity.ReportLabelCity, nil
			}
			label = entity.ReportLabelCompany
		}
	}
	return label, nil
}

// matchCityOrganization finds the first non-company organization one of
// whose area names appears in the address.
func matchCityOrganization(ctx context.Context, uow unitofwork.UnitOfWork, address string) (*entity.Organization, error) {
	orgs, err := uow.OrganizationRepository().FindAll(ctx, specification.Filter("is_company", false))
	if err != nil {
		return nil, err
	}
	for _, org := range orgs {
		for _, area := range org.Areas {
			if area.Name != "" && strings.Contains(address, area.Name) {
				return org, nil
			}
		}
	}
	return nil, nil
}

func (s *reportService) ListOwn(ctx context.Context, userId uint, filter *dto.ReportFilter) ([]*dto.ReportResponse, error) {
	specs := filterSpecs(filter)
	specs = append(specs, specification.Filter("user_id", userId))
	return s.list(ctx, specs)
}

// ListForOrg lists reports visible to the caller's organization: reports
// routed to it plus, for city organizations, anything in their areas.
func (s *reportService) ListForOrg(ctx context.Context, userId uint, filter *dto.ReportFilter) ([]*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrgId == nil {
		return nil, serverutils.NewForbidden("organization membership required")
	}

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: *user.OrgId})
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, serverutils.NewForbidden("organization not found")
	}

	specs := filterSpecs(filter)
	if org.IsCompany {
		// Companies only see what was routed or assigned to them.
		assignments, err := uow.AssignmentRepository().FindAll(ctx, specification.Filter("org_id", org.Id))
		if err != nil {
			return nil, err
		}
		ids := make([]uint, 0, len(assignments))
		for _, a := range assignments {
			ids = append(ids, a.ReportId)
		}
		reports, err := s.list(ctx, append(specs, specification.Filter("org_id", org.Id)))
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			assigned, err := s.list(ctx, append(filterSpecs(filter), specification.InIds{Ids: ids}))
			if err != nil {
				return nil, err
			}
			reports = mergeReports(reports, assigned)
		}
		return reports, nil
	}

	if len(filter.AreaKeywords) > 0 {
		specs = append(specs, specification.AddressInAnyArea{Keywords: filter.AreaKeywords})
	} else {
		keywords := make([]string, 0, len(org.Areas))
		for _, area := range org.Areas {
			keywords = append(keywords, area.Name)
		}
		specs = append(specs, specification.AddressInAnyArea{Keywords: keywords})
	}
	return s.list(ctx, specs)
}

func (s *reportService) list(ctx context.Context, specs []specification.Specification) ([]*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	reports, err := uow.ReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ReportResponse, len(reports))
	for i, report := range reports {
		result[i] = toReportResponse(report)
	}
	return result, nil
}

func filterSpecs(filter *dto.ReportFilter) []specification.Specification {
	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if filter == nil {
		return specs
	}
	specs = append(specs, specification.ByReportFilters{
		Category: filter.Category,
		Status:   filter.Status,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
	})
	if filter.Search != "" {
		specs = append(specs, specification.SearchText{Query: filter.Search})
	}
	if filter.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: filter.Limit, Offset: filter.Offset})
	}
	return specs
}

func mergeReports(a, b []*dto.ReportResponse) []*dto.ReportResponse {
	seen := make(map[uint]bool, len(a))
	for _, r := range a {
		seen[r.Id] = true
	}
	for _, r := range b {
		if !seen[r.Id] {
			a = append(a, r)
		}
	}
	return a
}

func (s *reportService) Get(ctx context.Context, userId, reportId uint) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, user, err := s.loadReportAndUser(ctx, uow, userId, reportId)
	if err != nil {
		return nil, err
	}
	if !canViewReport(user, report) {
		return nil, serverutils.NewForbidden("no access to this report")
	}
	return toReportResponse(report), nil
}

func (s *reportService) Update(ctx context.Context, userId, reportId uint, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, _, err := s.loadReportAndUser(ctx, uow, userId, reportId)
	if err != nil {
		return nil, err
	}
	if report.UserId != userId {
		return nil, serverutils.NewForbidden("only the author can edit a report")
	}

	if req.Title != nil {
		report.Title = req.Title
	}
	if req.Description != nil {
		report.Description = req.Description
	}
	if req.Address != nil {
		report.Address = req.Address
	}
	if req.Rating != nil {
		report.Rating = req.Rating
	}
	if req.Category != nil && *req.Category != report.Category {
		report.Category = *req.Category
		label, err := classifyReportLabel(ctx, uow, report.Category)
		if err != nil {
			return nil, err
		}
		report.Label = label
	}

	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

func (s *reportService) Delete(ctx context.Context, userId, reportId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, user, err := s.loadReportAndUser(ctx, uow, userId, reportId)
	if err != nil {
		return err
	}
	if report.UserId != userId && !user.IsAdmin {
		return serverutils.NewForbidden("only the author or an admin can delete a report")
	}
	return uow.ReportRepository().Delete(ctx, report.Id)
}

func (s *reportService) UpdateStatus(ctx context.Context, userId, reportId uint, status string) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, user, err := s.loadReportAndUser(ctx, uow, userId, reportId)
	if err != nil {
		return nil, err
	}
	if !canActOnReport(user, report) {
		assigned, err := s.isAssignedToUserOrg(ctx, uow, user, report)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, serverutils.NewForbidden("no access to this report")
		}
	}

	report.Status = entity.ReportStatus(status)
	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

func (s *reportService) Resolve(ctx context.Context, userId, reportId uint) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, user, err := s.loadReportAndUser(ctx, uow, userId, reportId)
	if err != nil {
		return nil, err
	}
	if !canActOnReport(user, report) {
		assigned, err := s.isAssignedToUserOrg(ctx, uow, user, report)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, serverutils.NewForbidden("no access to this report")
		}
	}

	report.Status = entity.ReportStatusResolved
	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		return nil, err
	}
	history := &entity.ResolvedHistory{
		ReportId:   report.Id,
		ResolvedBy: userId,
		ResolvedAt: time.Now(),
	}
	if err := uow.ReportRepository().CreateResolvedHistory(ctx, history); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil && user.OrgId != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewReportResolved(report.Id, *user.OrgId))
	}
	return toReportResponse(report), nil
}

// isAssignedToUserOrg admits company staff whose organization holds an
// assignment for the report even though the report row points at the city.
func (s *reportService) isAssignedToUserOrg(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, report *entity.Report) (bool, error) {
	if user.OrgId == nil {
		return false, nil
	}
	assignment, err := uow.AssignmentRepository().FindOne(ctx,
		specification.Filter("report_id", report.Id),
		specification.Filter("org_id", *user.OrgId),
	)
	if err != nil {
		return false, err
	}
	return assignment != nil, nil
}

func (s *reportService) loadReportAndUser(ctx context.Context, uow unitofwork.UnitOfWork, userId, reportId uint) (*entity.Report, *entity.User, error) {
	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: reportId})
	if err != nil {
		return nil, nil, err
	}
	if report == nil {
		return nil, nil, serverutils.NewNotFound("report not found")
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, serverutils.NewUnauthorized("unknown user")
	}
	return report, user, nil
}

func canViewReport(user *entity.User, report *entity.Report) bool {
	if user.IsAdmin || report.UserId == user.Id {
		return true
	}
	return user.OrgId != nil && report.OrgId != nil && *user.OrgId == *report.OrgId
}

// canActOnReport guards mutations by organization staff.
func canActOnReport(user *entity.User, report *entity.Report) bool {
	if user.IsAdmin {
		return true
	}
	return user.OrgId != nil && report.OrgId != nil && *user.OrgId == *report.OrgId
}

func toReportResponse(report *entity.Report) *dto.ReportResponse {
	images := make([]string, len(report.Images))
	for i, image := range report.Images {
		images[i] = image.ImagePath
	}
	resp := &dto.ReportResponse{
		Id:          report.Id,
		Lat:         report.Lat,
		Lng:         report.Lng,
		Title:       report.Title,
		Description: report.Description,
		Category:    report.Category,
		Status:      string(report.Status),
		Address:     report.Address,
		Rating:      report.Rating,
		Label:       string(report.Label),
		OrgId:       report.OrgId,
		UserId:      report.UserId,
		Images:      images,
		CreatedAt:   report.CreatedAt,
	}
	if report.User != nil {
		resp.UserName = report.User.Name
	}
	return resp
}
