package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
)

type IAdminService interface {
	Summary(ctx context.Context) (*dto.AdminSummaryResponse, error)
	ListReports(ctx context.Context, filter *dto.ReportFilter) ([]*dto.ReportResponse, error)
	SetReportStatus(ctx context.Context, reportId uint, status string) (*dto.ReportResponse, error)
	DeleteReport(ctx context.Context, reportId uint) error
	ListUsers(ctx context.Context, filter *dto.UserSearchFilter) ([]*dto.OrgUserResponse, error)
	CreateUser(ctx context.Context, adminId uint, req *dto.CreateUserRequest) (*dto.OrgUserResponse, error)
	UpdateUser(ctx context.Context, adminId, targetId uint, req *dto.UpdateUserRequest) (*dto.OrgUserResponse, error)
	DeleteUser(ctx context.Context, adminId, targetId uint) error
	ListOrganizations(ctx context.Context) ([]*dto.OrganizationResponse, error)
	UpdateOrganization(ctx context.Context, adminId, orgId uint, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error)
	DeleteOrganization(ctx context.Context, adminId, orgId uint) error
	ListAuditLogs(ctx context.Context, limit int) ([]*dto.AuditLogResponse, error)
	RecordPay(ctx context.Context, adminId uint, req *dto.RecordPayRequest) (*dto.PayHistoryResponse, error)
}

// adminService backs the /api/admin surface. Authorization itself happens in
// the route middleware; the adminId parameter is only used for audit entries.
type adminService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory) IAdminService {
	return &adminService{uowFactory: uowFactory}
}

func (s *adminService) Summary(ctx context.Context) (*dto.AdminSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary := &dto.AdminSummaryResponse{
		ReportsByStatus: make(map[string]int64, 4),
	}

	var err error
	if summary.TotalReports, err = uow.ReportRepository().Count(ctx); err != nil {
		return nil, err
	}
	for _, status := range []entity.ReportStatus{
		entity.ReportStatusNew,
		entity.ReportStatusShared,
		entity.ReportStatusInProgress,
		entity.ReportStatusResolved,
	} {
		count, err := uow.ReportRepository().Count(ctx, specification.Filter("status", string(status)))
		if err != nil {
			return nil, err
		}
		summary.ReportsByStatus[string(status)] = count
	}
	if summary.TotalUsers, err = uow.UserRepository().Count(ctx); err != nil {
		return nil, err
	}
	if summary.TotalOrganizations, err = uow.OrganizationRepository().Count(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *adminService) ListReports(ctx context.Context, filter *dto.ReportFilter) ([]*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reports, err := uow.ReportRepository().FindAll(ctx, filterSpecs(filter)...)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ReportResponse, len(reports))
	for i, report := range reports {
		result[i] = toReportResponse(report)
	}
	return result, nil
}

func (s *adminService) SetReportStatus(ctx context.Context, reportId uint, status string) (*dto.ReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: reportId})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.NewNotFound("report not found")
	}

	report.Status = entity.ReportStatus(status)
	if err := uow.ReportRepository().Update(ctx, report); err != nil {
		return nil, err
	}
	return toReportResponse(report), nil
}

func (s *adminService) DeleteReport(ctx context.Context, reportId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: reportId})
	if err != nil {
		return err
	}
	if report == nil {
		return serverutils.NewNotFound("report not found")
	}
	return uow.ReportRepository().Delete(ctx, reportId)
}

func (s *adminService) ListUsers(ctx context.Context, filter *dto.UserSearchFilter) ([]*dto.OrgUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if filter != nil && filter.Query != "" {
		specs = append(specs, specification.SearchUsers{Query: filter.Query})
	}
	if filter != nil && filter.Limit > 0 {
		specs = append(specs, specification.Pagination{Limit: filter.Limit, Offset: filter.Offset})
	}

	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.OrgUserResponse, len(users))
	for i, user := range users {
		result[i] = toOrgUserResponse(user)
	}
	return result, nil
}

func (s *adminService) CreateUser(ctx context.Context, adminId uint, req *dto.CreateUserRequest) (*dto.OrgUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("email already registered")
	}
	if req.OrgId != nil {
		org, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: *req.OrgId})
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, serverutils.NewNotFound("organization not found")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := entity.UserRole(req.Role)
	user := &entity.User{
		Code:         shortCode(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		UserType:     string(role),
		IsAdmin:      role == entity.UserRoleAdmin,
		OrgId:        req.OrgId,
		Name:         &req.Name,
		Memo:         req.Memo,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	s.log(ctx, uow, adminId, fmt.Sprintf("created user %s", user.Code))
	return toOrgUserResponse(user), nil
}

func (s *adminService) UpdateUser(ctx context.Context, adminId, targetId uint, req *dto.UpdateUserRequest) (*dto.OrgUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	target, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: targetId})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	if req.Name != nil {
		target.Name = req.Name
	}
	if req.Department != nil {
		target.Department = req.Department
	}
	if req.Memo != nil {
		target.Memo = req.Memo
	}
	if req.PayPayId != nil {
		target.PayPayId = req.PayPayId
	}
	if req.Role != nil {
		target.Role = entity.UserRole(*req.Role)
		target.IsAdmin = target.Role == entity.UserRoleAdmin
	}
	if req.OrgId != nil {
		target.OrgId = req.OrgId
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = string(hash)
	}

	if err := uow.UserRepository().Update(ctx, target); err != nil {
		return nil, err
	}
	s.log(ctx, uow, adminId, fmt.Sprintf("updated user %s", target.Code))
	return toOrgUserResponse(target), nil
}

func (s *adminService) DeleteUser(ctx context.Context, adminId, targetId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	target, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: targetId})
	if err != nil {
		return err
	}
	if target == nil {
		return serverutils.NewNotFound("user not found")
	}
	if target.IsAdmin {
		return serverutils.NewForbidden("admin accounts cannot be deleted")
	}
	if err := uow.UserRepository().Delete(ctx, targetId); err != nil {
		return err
	}
	s.log(ctx, uow, adminId, fmt.Sprintf("deleted user %s", target.Code))
	return nil
}

func (s *adminService) ListOrganizations(ctx context.Context) ([]*dto.OrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	orgs, err := uow.OrganizationRepository().FindAll(ctx,
		specification.Preload{Association: "Areas"},
		specification.Preload{Association: "Categories"},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.OrganizationResponse, len(orgs))
	for i, org := range orgs {
		result[i] = toOrganizationResponse(org)
	}
	return result, nil
}

func (s *adminService) UpdateOrganization(ctx context.Context, adminId, orgId uint, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: orgId})
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, serverutils.NewNotFound("organization not found")
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
	if req.ContractStatus != nil {
		org.ContractStatus = entity.ContractStatus(*req.ContractStatus)
	}
	if err := uow.OrganizationRepository().Update(ctx, org); err != nil {
		return nil, err
	}
	s.log(ctx, uow, adminId, fmt.Sprintf("updated organization %s", org.Name))
	return toOrganizationResponse(org), nil
}

func (s *adminService) DeleteOrganization(ctx context.Context, adminId, orgId uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	org, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: orgId})
	if err != nil {
		return err
	}
	if org == nil {
		return serverutils.NewNotFound("organization not found")
	}

	members, err := uow.UserRepository().Count(ctx, specification.Filter("org_id", orgId))
	if err != nil {
		return err
	}
	if members > 0 {
		return serverutils.NewConflict("organization still has members")
	}
	if err := uow.OrganizationRepository().Delete(ctx, orgId); err != nil {
		return err
	}
	s.log(ctx, uow, adminId, fmt.Sprintf("deleted organization %s", org.Name))
	return nil
}

func (s *adminService) ListAuditLogs(ctx context.Context, limit int) ([]*dto.AuditLogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "timestamp", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit})
	}
	logs, err := uow.AuditLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AuditLogResponse, len(logs))
	for i, entry := range logs {
		result[i] = &dto.AuditLogResponse{
			Id:        entry.Id,
			Action:    entry.Action,
			UserId:    entry.UserId,
			Timestamp: entry.Timestamp,
		}
	}
	return result, nil
}

func (s *adminService) RecordPay(ctx context.Context, adminId uint, req *dto.RecordPayRequest) (*dto.PayHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	target, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: req.UserId})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	record := &entity.PayHistory{
		UserId:    target.Id,
		Amount:    req.Amount,
		Timestamp: time.Now(),
	}
	if err := uow.PayHistoryRepository().Create(ctx, record); err != nil {
		return nil, err
	}
	target.PayPayStatus = entity.PayPayStatusSent
	if err := uow.UserRepository().Update(ctx, target); err != nil {
		return nil, err
	}
	s.log(ctx, uow, adminId, fmt.Sprintf("recorded payout of %d to user %s", req.Amount, target.Code))

	return &dto.PayHistoryResponse{
		Id:        record.Id,
		UserId:    record.UserId,
		Amount:    record.Amount,
		Timestamp: record.Timestamp,
	}, nil
}

// log writes a best-effort audit entry. Failures are swallowed so audit
// bookkeeping never breaks the admin action itself.
func (s *adminService) log(ctx context.Context, uow unitofwork.UnitOfWork, adminId uint, action string) {
	_ = uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		Action:    action,
		UserId:    &adminId,
		Timestamp: time.Now(),
	})
}
