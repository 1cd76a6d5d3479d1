package service

import (
	"context"
	"strings"

	"walkaudit-be/internal/config"
	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
	"walkaudit-be/pkg/events"
	pkgNats "walkaudit-be/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.LoginResponse, error)
	SignupGeneral(ctx context.Context, req *dto.SignupGeneralRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uint) (*dto.AuthUserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pkgNats.Publisher
	admin          config.AdminConfig
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pkgNats.Publisher, admin config.AdminConfig) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		admin:          admin,
	}
}

// shortCode derives a human-pasteable identifier for users and orgs.
func shortCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Signup registers an organization account: the organization itself, its
// coverage areas, and the first member user in one transaction.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	areas := make([]entity.Area, 0, len(req.Areas))
	for _, name := range req.Areas {
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

	orgCode := shortCode()
	org := &entity.Organization{
		Name:           req.OrgName,
		Industry:       req.Industry,
		ContractStatus: entity.ContractStatusActive,
		Code:           &orgCode,
		Region:         req.Region,
		IsCompany:      req.IsCompany,
		Areas:          areas,
	}
	if err := uow.OrganizationRepository().Create(ctx, org); err != nil {
		return nil, err
	}

	role := entity.UserRoleCity
	if req.IsCompany {
		role = entity.UserRoleCompany
	}
	user := &entity.User{
		Code:         shortCode(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		UserType:     string(role),
		OrgId:        &org.Id,
		Name:         &req.Name,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewUserRegistered(user.Id, string(user.Role)))
	}
	return s.issueToken(user, org)
}

// SignupGeneral registers a plain reporter account with no organization.
func (s *authService) SignupGeneral(ctx context.Context, req *dto.SignupGeneralRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Code:           shortCode(),
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           entity.UserRoleReporter,
		UserType:       string(entity.UserRoleReporter),
		Name:           &req.Name,
		SelectedCities: req.SelectedCities,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, events.NewUserRegistered(user.Id, string(user.Role)))
	}
	return s.issueToken(user, nil)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Bootstrap path: the configured admin account is created on its
		// first login so a fresh deployment is never locked out.
		if s.admin.Password != "" && req.Email == s.admin.Email && req.Password == s.admin.Password {
			return s.bootstrapAdmin(ctx, uow)
		}
		return nil, serverutils.NewUnauthorized("invalid credentials")
	}
	if !user.VerifyPassword(req.Password) {
		return nil, serverutils.NewUnauthorized("invalid credentials")
	}
	if user.IsBlocked {
		return nil, serverutils.NewForbidden("account is blocked")
	}

	var org *entity.Organization
	if user.OrgId != nil {
		org, err = uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: *user.OrgId})
		if err != nil {
			return nil, err
		}
	}
	return s.issueToken(user, org)
}

func (s *authService) bootstrapAdmin(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.LoginResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := "Administrator"
	user := &entity.User{
		Code:         shortCode(),
		Email:        s.admin.Email,
		PasswordHash: string(hash),
		Role:         entity.UserRoleAdmin,
		UserType:     string(entity.UserRoleAdmin),
		IsAdmin:      true,
		Name:         &name,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issueToken(user, nil)
}

func (s *authService) Me(ctx context.Context, userId uint) (*dto.AuthUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewNotFound("user not found")
	}

	var org *entity.Organization
	if user.OrgId != nil {
		org, err = uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: *user.OrgId})
		if err != nil {
			return nil, err
		}
	}
	resp := toAuthUserResponse(user, org)
	return &resp, nil
}

func (s *authService) issueToken(user *entity.User, org *entity.Organization) (*dto.LoginResponse, error) {
	var orgCode *string
	if org != nil {
		orgCode = org.Code
	}
	token, err := serverutils.CreateToken(user, orgCode)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toAuthUserResponse(user, org),
	}, nil
}

func toAuthUserResponse(user *entity.User, org *entity.Organization) dto.AuthUserResponse {
	resp := dto.AuthUserResponse{
		Id:      user.Id,
		Code:    user.Code,
		Email:   user.Email,
		Name:    user.Name,
		Role:    string(user.Role),
		IsAdmin: user.IsAdmin,
		OrgId:   user.OrgId,
	}
	if org != nil {
		resp.OrgCode = org.Code
		resp.OrgName = &org.Name
	}
	return resp
}
