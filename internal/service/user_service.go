package service

import (
	"context"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
)

type IUserService interface {
	ListReporters(ctx context.Context, userId uint, filter *dto.UserSearchFilter) ([]*dto.OrgUserResponse, error)
	ToggleBlock(ctx context.Context, callerId, targetId uint) (*dto.OrgUserResponse, error)
	SetPayStatus(ctx context.Context, callerId, targetId uint, req *dto.SetPayStatusRequest) (*dto.OrgUserResponse, error)
	ListPayHistory(ctx context.Context, callerId uint) ([]*dto.PayHistoryResponse, error)
}

// userService covers the staff-facing user management surface: browsing
// reporters, blocking abusive accounts and tracking reward payouts.
type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) requireStaff(ctx context.Context, uow unitofwork.UnitOfWork, userId uint) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewUnauthorized("unknown user")
	}
	if !user.IsAdmin && user.OrgId == nil {
		return nil, serverutils.NewForbidden("organization membership required")
	}
	return user, nil
}

func (s *userService) ListReporters(ctx context.Context, userId uint, filter *dto.UserSearchFilter) ([]*dto.OrgUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.requireStaff(ctx, uow, userId); err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.Filter("role", string(entity.UserRoleReporter)),
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

func (s *userService) ToggleBlock(ctx context.Context, callerId, targetId uint) (*dto.OrgUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.requireStaff(ctx, uow, callerId); err != nil {
		return nil, err
	}

	target, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: targetId})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, serverutils.NewNotFound("user not found")
	}
	if target.IsAdmin {
		return nil, serverutils.NewForbidden("admin accounts cannot be blocked")
	}

	target.IsBlocked = !target.IsBlocked
	if err := uow.UserRepository().Update(ctx, target); err != nil {
		return nil, err
	}
	return toOrgUserResponse(target), nil
}

// SetPayStatus flips a reporter's payout flag. Marking a payout as sent also
// records it in the pay history.
func (s *userService) SetPayStatus(ctx context.Context, callerId, targetId uint, req *dto.SetPayStatusRequest) (*dto.OrgUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.requireStaff(ctx, uow, callerId); err != nil {
		return nil, err
	}

	target, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: targetId})
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	status := entity.PayPayStatus(req.Status)
	target.PayPayStatus = status
	if err := uow.UserRepository().Update(ctx, target); err != nil {
		return nil, err
	}

	if status == entity.PayPayStatusSent && req.Amount > 0 {
		record := &entity.PayHistory{
			UserId: target.Id,
			Amount: req.Amount,
		}
		if err := uow.PayHistoryRepository().Create(ctx, record); err != nil {
			return nil, err
		}
	}
	return toOrgUserResponse(target), nil
}

func (s *userService) ListPayHistory(ctx context.Context, callerId uint) ([]*dto.PayHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.requireStaff(ctx, uow, callerId); err != nil {
		return nil, err
	}

	records, err := uow.PayHistoryRepository().FindAll(ctx, specification.OrderBy{Field: "timestamp", Desc: true})
	if err != nil {
		return nil, err
	}
	result := make([]*dto.PayHistoryResponse, len(records))
	for i, record := range records {
		result[i] = &dto.PayHistoryResponse{
			Id:        record.Id,
			UserId:    record.UserId,
			Amount:    record.Amount,
			Timestamp: record.Timestamp,
		}
	}
	return result, nil
}

func toOrgUserResponse(user *entity.User) *dto.OrgUserResponse {
	return &dto.OrgUserResponse{
		Id:           user.Id,
		Code:         user.Code,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		IsBlocked:    user.IsBlocked,
		Department:   user.Department,
		Memo:         user.Memo,
		PayPayId:     user.PayPayId,
		PayPayStatus: string(user.PayPayStatus),
		CreatedAt:    user.CreatedAt,
	}
}
