package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkaudit-be/internal/dto"
	"walkaudit-be/internal/entity"
	"walkaudit-be/internal/repository/contract"
	"walkaudit-be/internal/repository/specification"
)

type fakeOrgRepo struct {
	contract.OrganizationRepository
	orgs []*entity.Organization
}

func (r *fakeOrgRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Organization, error) {
	for _, spec := range specs {
		if f, ok := spec.(specification.FilterBy); ok && f.Field == "is_company" {
			var filtered []*entity.Organization
			for _, org := range r.orgs {
				if org.IsCompany == f.Value.(bool) {
					filtered = append(filtered, org)
				}
			}
			return filtered, nil
		}
	}
	return r.orgs, nil
}

type orgUow struct {
	fakeUow
	orgs *fakeOrgRepo
}

func (u *orgUow) OrganizationRepository() contract.OrganizationRepository { return u.orgs }

func routingFixture() *orgUow {
	cityOrg := &entity.Organization{
		Id:         10,
		Name:       "Chiyoda Ward Office",
		IsCompany:  false,
		Areas:      []entity.Area{{Id: 1, Name: "Chiyoda"}},
		Categories: []entity.Category{{Id: 1, Name: "road_damage"}},
	}
	companyOrg := &entity.Organization{
		Id:         20,
		Name:       "Metro Lighting Co",
		IsCompany:  true,
		Areas:      []entity.Area{{Id: 2, Name: "Shinjuku"}},
		Categories: []entity.Category{{Id: 2, Name: "streetlight"}, {Id: 1, Name: "road_damage"}},
	}
	return &orgUow{orgs: &fakeOrgRepo{orgs: []*entity.Organization{cityOrg, companyOrg}}}
}

func TestClassifyReportLabel(t *testing.T) {
	uow := routingFixture()
	ctx := context.Background()

	tests := []struct {
		category string
		want     entity.ReportLabel
	}{
		{category: "road_damage", want: entity.ReportLabelCity}, // city coverage wins over company
		{category: "streetlight", want: entity.ReportLabelCompany},
		{category: "ROAD_DAMAGE", want: entity.ReportLabelCity}, // case-insensitive
		{category: "graffiti", want: entity.ReportLabelUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			label, err := classifyReportLabel(ctx, uow, tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestMatchCityOrganization(t *testing.T) {
	uow := routingFixture()
	ctx := context.Background()

	org, err := matchCityOrganization(ctx, uow, "1-1 Chiyoda, Tokyo")
	require.NoError(t, err)
	require.NotNil(t, org)
	assert.Equal(t, uint(10), org.Id)

	// Company areas never match even when the address falls inside them.
	org, err = matchCityOrganization(ctx, uow, "2-3 Shinjuku, Tokyo")
	require.NoError(t, err)
	assert.Nil(t, org)

	org, err = matchCityOrganization(ctx, uow, "somewhere else entirely")
	require.NoError(t, err)
	assert.Nil(t, org)
}

func TestMergeReportsDeduplicates(t *testing.T) {
	a := []*dto.ReportResponse{{Id: 1}, {Id: 2}}
	b := []*dto.ReportResponse{{Id: 2}, {Id: 3}}

	merged := mergeReports(a, b)

	require.Len(t, merged, 3)
	ids := []uint{merged[0].Id, merged[1].Id, merged[2].Id}
	assert.Equal(t, []uint{1, 2, 3}, ids)
}
