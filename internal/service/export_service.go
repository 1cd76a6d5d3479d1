package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
	"walkaudit-be/internal/repository/unitofwork"
)

type IExportService interface {
	ExportReports(ctx context.Context, userId uint, filter *dto.ReportFilter) (filename string, data []byte, err error)
}

// exportService renders report listings as CSV downloads for staff users.
type exportService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewExportService(uowFactory unitofwork.RepositoryFactory) IExportService {
	return &exportService{uowFactory: uowFactory}
}

var exportHeader = []string{
	"id", "title", "category", "status", "label",
	"lat", "lng", "address", "reporter_code", "created_at",
}

func (s *exportService) ExportReports(ctx context.Context, userId uint, filter *dto.ReportFilter) (string, []byte, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ById{Id: userId})
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, serverutils.NewUnauthorized("unknown user")
	}
	if !user.IsAdmin && user.OrgId == nil {
		return "", nil, serverutils.NewForbidden("organization membership required")
	}

	specs := filterSpecs(filter)
	specs = append(specs, specification.Preload{Association: "User"})
	if !user.IsAdmin {
		specs = append(specs, specification.Filter("org_id", *user.OrgId))
	}
	reports, err := uow.ReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return "", nil, err
	}
	for _, report := range reports {
		if err := w.Write(exportRow(report)); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf("reports-%s.csv", time.Now().Format("20060102-150405"))
	return filename, buf.Bytes(), nil
}

func exportRow(report *entity.Report) []string {
	deref := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	reporter := ""
	if report.User != nil {
		reporter = report.User.Code
	}
	return []string{
		strconv.FormatUint(uint64(report.Id), 10),
		deref(report.Title),
		report.Category,
		string(report.Status),
		string(report.Label),
		strconv.FormatFloat(report.Lat, 'f', 6, 64),
		strconv.FormatFloat(report.Lng, 'f', 6, 64),
		deref(report.Address),
		reporter,
		report.CreatedAt.Format(time.RFC3339),
	}
}
