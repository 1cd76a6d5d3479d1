package service

import (
	"context"
	"fmt"
	"time"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/logger"
	"walkaudit-be/internal/pkg/mailer"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
	"walkaudit-be/pkg/events"
	pkgNats "walkaudit-be/pkg/nats"
)

type IAssignmentService interface {
	Assign(ctx context.Context, userId uint, req *dto.AssignReportRequest) ([]*dto.AssignmentResponse, error)
	List(ctx context.Context, userId uint) ([]*dto.AssignmentResponse, error)
	UpdateStatus(ctx context.Context, userId, assignmentId uint, status string) (*dto.AssignmentResponse, error)
}

type assignmentService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pkgNats.Publisher
	logger         logger.ILogger
}

func NewAssignmentService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IAssignmentService {
	return &assignmentService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Assign shares a report with one or more company organizations. The report
// moves to shared, each assignment is recorded in the audit trail, and the
// target organizations are notified by email and event.
func (s *assignmentService) Assign(ctx context.Context, userId uint, req *dto.AssignReportRequest) ([]*dto.AssignmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrgId == nil {
		return nil, serverutils.NewForbidden("organization membership required")
	}
	callerOrg, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: *user.OrgId})
	if err != nil {
		return nil, err
	}
	if callerOrg == nil || callerOrg.IsCompany {
		return nil, serverutils.NewForbidden("only city organizations can assign reports")
	}

	report, err := uow.ReportRepository().FindOne(ctx, specification.ById{Id: req.ReportId})
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.NewNotFound("report not found")
	}

	result := make([]*dto.AssignmentResponse, 0, len(req.OrgIds))
	for _, orgId := range req.OrgIds {
		org, err := uow.OrganizationRepository().FindOne(ctx, specification.ById{Id: orgId})
		if err != nil {
			return nil, err
		}
		if org == nil || !org.IsCompany {
			return nil, serverutils.NewBadRequest(fmt.Sprintf("organization %d is not an assignable company", orgId))
		}

		existing, err := uow.AssignmentRepository().FindOne(ctx,
			specification.Filter("report_id", report.Id),
			specification.Filter("org_id", org.Id),
		)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result = append(result, toAssignmentResponse(existing))
			continue
		}

		assignment := &entity.ReportAssignment{
			ReportId:   report.Id,
			OrgId:      org.Id,
			AssignedBy: userId,
			Status:     entity.AssignmentStatusAssigned,
			AssignedAt: time.Now(),
		}
		if err := uow.AssignmentRepository().Create(ctx, assignment); err != nil {
			return nil, err
		}

		audit := &entity.AuditLog{
			Action: fmt.Sprintf("assigned report %d to organization %s", report.Id, org.Name),
			UserId: &userId,
		}
		if err := uow.AuditLogRepository().Create(ctx, audit); err != nil {
			return nil, err
		}

		s.sendAssignmentEmails(ctx, uow, org, report)
		if s.eventPublisher != nil {
			_ = s.eventPublisher.Publish(ctx, events.NewReportAssigned(report.Id, org.Id))
		}

		result = append(result, toAssignmentResponse(assignment))
	}

	if report.Status == entity.ReportStatusNew {
		report.Status = entity.ReportStatusShared
		if err := uow.ReportRepository().Update(ctx, report); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *assignmentService) sendAssignmentEmails(ctx context.Context, uow unitofwork.UnitOfWork, org *entity.Organization, report *entity.Report) {
	members, err := uow.UserRepository().FindAll(ctx, specification.Filter("org_id", org.Id))
	if err != nil {
		s.logger.Warn("AssignmentService", "Failed to load members for assignment email", map[string]interface{}{
			"org_id": org.Id,
			"error":  err.Error(),
		})
		return
	}
	title := ""
	if report.Title != nil {
		title = *report.Title
	}
	for _, member := range members {
		if err := s.emailService.SendAssignmentNotice(member.Email, org.Name, title, report.Id); err != nil {
			s.logger.Warn("AssignmentService", "Assignment email failed", map[string]interface{}{
				"email": member.Email,
				"error": err.Error(),
			})
		}
	}
}

// List returns the caller's view of assignments: company members see
// assignments to their organization, city members the assignments their
// organization handed out.
func (s *assignmentService) List(ctx context.Context, userId uint) ([]*dto.AssignmentResponse, error) {
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

	var specs []specification.Specification
	if org.IsCompany {
		specs = append(specs, specification.Filter("org_id", org.Id))
	} else {
		members, err := uow.UserRepository().FindAll(ctx, specification.Filter("org_id", org.Id))
		if err != nil {
			return nil, err
		}
		memberIds := make([]uint, len(members))
		for i, m := range members {
			memberIds[i] = m.Id
		}
		if len(memberIds) == 0 {
			return []*dto.AssignmentResponse{}, nil
		}
		specs = append(specs, specification.FieldIn{Field: "assigned_by", Values: memberIds})
	}
	specs = append(specs, specification.OrderBy{Field: "assigned_at", Desc: true})

	assignments, err := uow.AssignmentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AssignmentResponse, len(assignments))
	for i, a := range assignments {
		result[i] = toAssignmentResponse(a)
	}
	return result, nil
}

func (s *assignmentService) UpdateStatus(ctx context.Context, userId, assignmentId uint, status string) (*dto.AssignmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return nil, err
	}
	if user == nil || user.OrgId == nil {
		return nil, serverutils.NewForbidden("organization membership required")
	}

	assignment, err := uow.AssignmentRepository().FindOne(ctx, specification.ById{Id: assignmentId})
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, serverutils.NewNotFound("assignment not found")
	}
	if assignment.OrgId != *user.OrgId && !user.IsAdmin {
		return nil, serverutils.NewForbidden("assignment belongs to another organization")
	}

	assignment.Status = entity.AssignmentStatus(status)
	if assignment.Status == entity.AssignmentStatusCompleted && assignment.CompletedAt == nil {
		now := time.Now()
		assignment.CompletedAt = &now
	}
	if err := uow.AssignmentRepository().Update(ctx, assignment); err != nil {
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

func toAssignmentResponse(assignment *entity.ReportAssignment) *dto.AssignmentResponse {
	resp := &dto.AssignmentResponse{
		Id:          assignment.Id,
		ReportId:    assignment.ReportId,
		OrgId:       assignment.OrgId,
		AssignedBy:  assignment.AssignedBy,
		Status:      string(assignment.Status),
		AssignedAt:  assignment.AssignedAt,
		CompletedAt: assignment.CompletedAt,
	}
	if assignment.Report != nil {
		resp.Report = toReportResponse(assignment.Report)
	}
	return resp
}
