package service

import (
	"context"
	"encoding/csv"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/pkg/serverutils"
	"walkaudit-be/internal/repository/specification"
)

func (r *fakeReportRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Report, error) {
	var orgFilter *uint
	for _, spec := range specs {
		if f, ok := spec.(specification.FilterBy); ok && f.Field == "org_id" {
			v := f.Value.(uint)
			orgFilter = &v
		}
	}

	var reports []*entity.Report
	for _, report := range r.reports {
		if orgFilter != nil && (report.OrgId == nil || *report.OrgId != *orgFilter) {
			continue
		}
		reports = append(reports, report)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Id < reports[j].Id })
	return reports, nil
}

func exportFixture() (*exportService, *fakeUow) {
	admin := &entity.User{Id: 1, Code: "ADM1", IsAdmin: true}
	member := &entity.User{Id: 2, Code: "CITY1", OrgId: uintPtr(10)}
	reporter := &entity.User{Id: 3, Code: "REP1"}

	uow := &fakeUow{
		users: &fakeUserRepo{users: map[uint]*entity.User{
			admin.Id: admin, member.Id: member, reporter.Id: reporter,
		}},
		reports: &fakeReportRepo{reports: map[uint]*entity.Report{
			100: {
				Id:        100,
				Title:     strPtr("Cracked pavement"),
				Category:  "road_damage",
				Status:    entity.ReportStatusNew,
				Label:     entity.ReportLabelCity,
				Lat:       35.681236,
				Lng:       139.766092,
				Address:   strPtr("1-1 Chiyoda, Tokyo"),
				UserId:    reporter.Id,
				User:      reporter,
				OrgId:     uintPtr(10),
				CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
			},
			101: {
				Id:       101,
				Category: "streetlight",
				Status:   entity.ReportStatusShared,
				Label:    entity.ReportLabelCompany,
				UserId:   reporter.Id,
				OrgId:    uintPtr(20),
			},
		}},
	}
	svc := &exportService{uowFactory: &fakeFactory{uow: uow}}
	return svc, uow
}

func TestExportReportsCSV(t *testing.T) {
	svc, _ := exportFixture()

	filename, data, err := svc.ExportReports(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "reports-"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two reports")
	assert.Equal(t, exportHeader, rows[0])

	first := rows[1]
	assert.Equal(t, "100", first[0])
	assert.Equal(t, "Cracked pavement", first[1])
	assert.Equal(t, "road_damage", first[2])
	assert.Equal(t, "new", first[3])
	assert.Equal(t, "city", first[4])
	assert.Equal(t, "35.681236", first[5])
	assert.Equal(t, "139.766092", first[6])
	assert.Equal(t, "1-1 Chiyoda, Tokyo", first[7])
	assert.Equal(t, "REP1", first[8])
	assert.Equal(t, "2026-02-01T09:00:00Z", first[9])

	// Optional fields render as empty cells, not placeholders.
	second := rows[2]
	assert.Equal(t, "", second[1])
	assert.Equal(t, "", second[7])
	assert.Equal(t, "", second[8])
}

func TestExportReportsScopedToOrg(t *testing.T) {
	svc, _ := exportFixture()

	_, data, err := svc.ExportReports(context.Background(), 2, nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "only the caller's org reports")
	assert.Equal(t, "100", rows[1][0])
}

func TestExportReportsRequiresStaff(t *testing.T) {
	svc, _ := exportFixture()

	_, _, err := svc.ExportReports(context.Background(), 3, nil)
	require.Error(t, err)
	assert.True(t, serverutils.IsStatus(err, fiber.StatusForbidden))
}
